// Command verdict trains a binary sentiment classifier on the IMDB movie
// review corpus and reports its accuracy on the held-out test split.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/verdict-ml/verdict/internal/autodiff"
	"github.com/verdict-ml/verdict/internal/backend/cpu"
	"github.com/verdict-ml/verdict/internal/config"
	"github.com/verdict-ml/verdict/internal/imdb"
	"github.com/verdict-ml/verdict/internal/model"
	"github.com/verdict-ml/verdict/internal/nn"
	"github.com/verdict-ml/verdict/internal/optim"
	"github.com/verdict-ml/verdict/internal/report"
	"github.com/verdict-ml/verdict/internal/tensor"
)

// sentimentBackend is the backend stack every tensor in this program runs on.
type sentimentBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	fmt.Println("🚀 Verdict - IMDB Sentiment Classification")
	fmt.Println("=" + string(make([]byte, 70)))

	// Initialize backend with autodiff
	backend := autodiff.New(cpu.New())

	// Load the review corpus
	var dataset *imdb.Dataset
	if cfg.Synthetic {
		fmt.Println("\n📊 Using synthetic data (generated reviews)...")
		dataset = imdb.Synthetic(1000, imdbConfig(cfg), cfg.Seed)
	} else {
		fmt.Printf("\n📊 Loading IMDB corpus (cache dir: %s)\n", cfg.DataDir)
		dataset, err = imdb.Load(imdbConfig(cfg))
		if err != nil {
			log.Fatalf("Failed to load IMDB corpus: %v", err)
		}
	}

	stats := imdb.Summarize(dataset)
	fmt.Printf("   Train: %d samples, Test: %d samples\n", stats.TrainSamples, stats.TestSamples)
	fmt.Printf("   Classes: %v\n", stats.Classes)
	fmt.Printf("   Largest token id: %d\n", stats.MaxTokenID)
	fmt.Printf("   Review length: mean=%.2f, stddev=%.2f tokens\n", stats.MeanLength, stats.StddevLength)

	if cfg.PlotPath != "" {
		if err := report.SaveLengthBoxPlot(imdb.Lengths(dataset), cfg.PlotPath); err != nil {
			log.Fatalf("Failed to save length box plot: %v", err)
		}
		fmt.Printf("   Saved review length box plot to %s\n", cfg.PlotPath)
	}

	// Create model
	fmt.Printf("\n🧠 Creating %s model...\n", cfg.Model)
	var net model.Model[sentimentBackend]
	switch cfg.Model {
	case "mlp":
		net = model.NewSentimentMLP[sentimentBackend](cfg.VocabSize, cfg.MaxLen, backend)
		fmt.Printf("   Architecture:\n")
		fmt.Printf("     Embedding: %d x %d\n", cfg.VocabSize, model.EmbedDim)
		fmt.Printf("     FC: %d->%d->1\n", cfg.MaxLen*model.EmbedDim, model.HiddenDim)
	case "cnn":
		net = model.NewSentimentCNN[sentimentBackend](cfg.VocabSize, cfg.MaxLen, backend)
		fmt.Printf("   Architecture:\n")
		fmt.Printf("     Embedding: %d x %d\n", cfg.VocabSize, model.EmbedDim)
		fmt.Printf("     Conv1D: %d->%d channels, kernel %d, same padding\n",
			model.EmbedDim, model.ConvFilters, model.ConvWindow)
		fmt.Printf("     MaxPool: window %d\n", model.PoolWindow)
		fmt.Printf("     FC: %d->%d->1\n", model.ConvFilters*cfg.MaxLen/model.PoolWindow, model.HiddenDim)
	default:
		log.Fatalf("Unknown model %q (want mlp or cnn)", cfg.Model)
	}
	fmt.Printf("   Model has %d trainable parameters\n", model.NumParameters(net))

	// Create optimizer (Adam with default parameters)
	fmt.Printf("\n⚙️  Training Configuration:\n")
	fmt.Printf("   Optimizer: Adam (lr=%.4f, betas=(0.9, 0.999))\n", cfg.LearningRate)
	fmt.Printf("   Loss: BinaryCrossEntropy (with autodiff)\n")
	fmt.Printf("   Batch Size: %d\n", cfg.BatchSize)
	fmt.Printf("   Epochs: %d\n", cfg.Epochs)

	optimizer := optim.NewAdam(
		net.Parameters(),
		optim.AdamConfig{
			LR:    float32(cfg.LearningRate),
			Betas: [2]float32{0.9, 0.999},
			Eps:   1e-8,
		},
		backend,
	)

	// Enable gradient recording
	backend.Tape().StartRecording()

	// Create batches
	fmt.Println("\n📦 Creating data batches...")
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible shuffling, not crypto
	trainBatches, err := imdb.CreateBatches(&dataset.Train, cfg.MaxLen, cfg.BatchSize, rng, backend)
	if err != nil {
		log.Fatalf("Failed to create train batches: %v", err)
	}
	testBatches, err := imdb.CreateBatches(&dataset.Test, cfg.MaxLen, cfg.BatchSize, nil, backend)
	if err != nil {
		log.Fatalf("Failed to create test batches: %v", err)
	}
	fmt.Printf("   Train batches: %d\n", len(trainBatches))
	fmt.Printf("   Test batches: %d\n", len(testBatches))

	// Training loop
	fmt.Println("\n🎓 Starting training...")
	fmt.Println("=" + string(make([]byte, 70)))

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		avgLoss, trainAcc := trainEpoch(net, trainBatches, optimizer, backend)
		valLoss, valAcc := validate(net, testBatches, backend)

		fmt.Printf("Epoch %2d/%d: Loss=%.4f, Train Acc=%.2f%%, Test Loss=%.4f, Test Acc=%.2f%%\n",
			epoch+1, cfg.Epochs, avgLoss, trainAcc*100, valLoss, valAcc*100)
	}

	fmt.Println("=" + string(make([]byte, 70)))
	fmt.Println("✅ Training complete!")

	// Final evaluation on the held-out test split
	testLoss, testAcc := validate(net, testBatches, backend)
	fmt.Printf("\n🎯 Test Results:\n")
	fmt.Printf("   Loss: %.4f\n", testLoss)
	fmt.Printf("   Accuracy: %.2f%%\n", testAcc*100)
}

// parseConfig builds the run configuration from defaults, an optional YAML
// file, and command line flags, in increasing order of precedence.
func parseConfig(args []string) (config.Config, error) {
	def := config.Default()

	fs := flag.NewFlagSet("verdict", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	modelName := fs.String("model", def.Model, "Model architecture: mlp or cnn")
	epochs := fs.Int("epochs", def.Epochs, "Number of training epochs")
	batchSize := fs.Int("batch", def.BatchSize, "Mini-batch size")
	lr := fs.Float64("lr", def.LearningRate, "Learning rate for Adam optimizer")
	vocabSize := fs.Int("vocab", def.VocabSize, "Vocabulary size (token ids above are dropped)")
	skipTop := fs.Int("skip-top", def.SkipTop, "Most frequent ranks to drop")
	maxLen := fs.Int("maxlen", def.MaxLen, "Fixed review length in tokens")
	dataDir := fs.String("data", def.DataDir, "Directory for the corpus download and cache")
	plotPath := fs.String("plot", def.PlotPath, "Review length box plot output path (empty disables)")
	seed := fs.Int64("seed", def.Seed, "Random seed for shuffling and synthetic data")
	synthetic := fs.Bool("synthetic", def.Synthetic, "Use synthetic data (for testing without the corpus)")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := def
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	// Explicit flags win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model = *modelName
		case "epochs":
			cfg.Epochs = *epochs
		case "batch":
			cfg.BatchSize = *batchSize
		case "lr":
			cfg.LearningRate = *lr
		case "vocab":
			cfg.VocabSize = *vocabSize
		case "skip-top":
			cfg.SkipTop = *skipTop
		case "maxlen":
			cfg.MaxLen = *maxLen
		case "data":
			cfg.DataDir = *dataDir
		case "plot":
			cfg.PlotPath = *plotPath
		case "seed":
			cfg.Seed = *seed
		case "synthetic":
			cfg.Synthetic = *synthetic
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// imdbConfig maps the run configuration onto the dataset loader options.
func imdbConfig(cfg config.Config) imdb.Config {
	loader := imdb.DefaultConfig()
	loader.CacheDir = cfg.DataDir
	loader.VocabSize = cfg.VocabSize
	loader.SkipTop = cfg.SkipTop
	loader.MaxLen = cfg.MaxLen
	return loader
}

// trainEpoch trains the model for one epoch.
func trainEpoch[B tensor.Backend](
	net model.Model[*autodiff.AutodiffBackend[B]],
	batches []*imdb.Batch[*autodiff.AutodiffBackend[B]],
	optimizer optim.Optimizer,
	backend *autodiff.AutodiffBackend[B],
) (avgLoss float32, accuracy float64) {
	totalLoss := float32(0.0)
	totalCorrect := 0
	totalSamples := 0

	for _, batch := range batches {
		// Zero gradients
		optimizer.ZeroGrad()

		// Forward pass
		probs := net.Forward(batch.Inputs)

		// Compute loss using autodiff backend (records on tape)
		lossRaw := backend.BinaryCrossEntropy(probs.Raw(), batch.Labels.Raw())
		lossValue := lossRaw.AsFloat32()[0]

		// Backward pass: seed the scalar loss with a gradient of one
		outputGrad, err := tensor.NewRaw(lossRaw.Shape(), lossRaw.DType())
		if err != nil {
			panic(err)
		}
		outputGrad.AsFloat32()[0] = 1.0

		grads := backend.Tape().Backward(outputGrad, backend)

		// Update parameters
		optimizer.Step(grads)

		// Track metrics
		totalLoss += lossValue
		acc := nn.BinaryAccuracy(probs, batch.Labels)
		totalCorrect += int(acc*float64(batch.Size) + 0.5)
		totalSamples += batch.Size

		// Clear tape for next iteration
		backend.Tape().Clear()
	}

	avgLoss = totalLoss / float32(len(batches))
	accuracy = float64(totalCorrect) / float64(totalSamples)
	return avgLoss, accuracy
}

// validate evaluates the model without recording gradients.
func validate[B tensor.Backend](
	net model.Model[*autodiff.AutodiffBackend[B]],
	batches []*imdb.Batch[*autodiff.AutodiffBackend[B]],
	backend *autodiff.AutodiffBackend[B],
) (avgLoss float32, accuracy float64) {
	totalLoss := float32(0.0)
	totalCorrect := 0
	totalSamples := 0

	wasRecording := backend.Tape().IsRecording()
	backend.Tape().StopRecording()
	defer func() {
		if wasRecording {
			backend.Tape().StartRecording()
		}
	}()

	for _, batch := range batches {
		probs := net.Forward(batch.Inputs)

		lossRaw := backend.BinaryCrossEntropy(probs.Raw(), batch.Labels.Raw())
		lossValue := lossRaw.AsFloat32()[0]

		totalLoss += lossValue
		acc := nn.BinaryAccuracy(probs, batch.Labels)
		totalCorrect += int(acc*float64(batch.Size) + 0.5)
		totalSamples += batch.Size
	}

	avgLoss = totalLoss / float32(len(batches))
	accuracy = float64(totalCorrect) / float64(totalSamples)
	return avgLoss, accuracy
}
