package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/FlavioCFOliveira/feedforward/internal/config"
	"github.com/FlavioCFOliveira/feedforward/internal/dataset"
	"github.com/FlavioCFOliveira/feedforward/internal/loss"
	"github.com/FlavioCFOliveira/feedforward/internal/metrics"
	"github.com/FlavioCFOliveira/feedforward/internal/model"
	"github.com/FlavioCFOliveira/feedforward/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults to the XOR run)")
	ds := flag.String("dataset", "", "Override dataset (xor|points|digits|csv)")
	dataPath := flag.String("data-path", "", "Override dataset path")
	hidden := flag.Int("hidden", 0, "Override number of hidden neurons")
	lr := flag.Float64("lr", 0, "Override learning rate")
	act := flag.String("activation", "", "Override activation (sigmoid|tanh)")
	steps := flag.Int("steps", 0, "Number of training steps")
	sampling := flag.String("sampling", "", "Override sampling policy (uniform|shuffle)")
	seed := flag.Int64("seed", 0, "PRNG seed")
	logEvery := flag.Int("log-every", 0, "Log every N steps")
	csvLog := flag.String("csv-log", "", "Write per-window metrics to this CSV file")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	if err := cfg.ApplyOverrides(config.Overrides{
		Dataset:      *ds,
		DataPath:     *dataPath,
		HiddenSize:   *hidden,
		LearningRate: *lr,
		Activation:   *act,
		Steps:        *steps,
		Sampling:     *sampling,
		Seed:         *seed,
		LogEvery:     *logEvery,
		CSVLog:       *csvLog,
	}); err != nil {
		log.Fatalf("invalid override: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	data, err := cfg.LoadDataset()
	if err != nil {
		log.Fatalf("load dataset %s: %v", cfg.Dataset, err)
	}
	data.Shuffle(cfg.Seed)
	train, test := data.Split(cfg.TrainSplit)
	if test.Len() == 0 {
		test = train
	}
	log.Printf("dataset=%s samples=%d train=%d test=%d inputs=%d outputs=%d",
		data.Name, data.Len(), train.Len(), test.Len(), data.InputSize, data.OutputSize)

	m, err := model.New(cfg.ModelConfig(data.InputSize, data.OutputSize))
	if err != nil {
		log.Fatalf("create model: %v", err)
	}
	log.Printf("model=%d-%d-%d activation=%s learning_rate=%g",
		m.InputSize(), m.HiddenSize(), m.OutputSize(), m.Activation(), m.LearningRate())

	sampler, err := dataset.NewSampler(train, cfg.Sampling, cfg.Seed)
	if err != nil {
		log.Fatalf("create sampler: %v", err)
	}

	callbacks := []trainer.Callback{trainer.Logger{}}
	if cfg.CSVLog != "" {
		callbacks = append(callbacks, trainer.NewCSVLogger(cfg.CSVLog, false))
	}
	if cfg.TargetLoss > 0 || cfg.Patience > 0 {
		callbacks = append(callbacks, trainer.NewEarlyStopping(cfg.TargetLoss, cfg.Patience, 0))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCfg := trainer.RunConfig{
		Steps:    cfg.Steps,
		LogEvery: cfg.LogEvery,
	}
	if _, err := trainer.Run(ctx, m, sampler, runCfg, callbacks...); err != nil {
		log.Fatalf("training failed: %v", err)
	}

	total, err := metrics.TotalLoss(m, test, loss.SquaredError{})
	if err != nil {
		log.Fatalf("evaluate loss: %v", err)
	}
	acc, err := metrics.Accuracy(m, test)
	if err != nil {
		log.Fatalf("evaluate accuracy: %v", err)
	}
	log.Printf("eval samples=%d total_loss=%.6f accuracy=%.4f", test.Len(), total, acc)
}
