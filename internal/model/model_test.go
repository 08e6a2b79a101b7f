package model_test

import (
	"math"
	"testing"

	"github.com/verdict-ml/verdict/internal/autodiff"
	"github.com/verdict-ml/verdict/internal/backend/cpu"
	"github.com/verdict-ml/verdict/internal/imdb"
	"github.com/verdict-ml/verdict/internal/model"
	"github.com/verdict-ml/verdict/internal/optim"
	"github.com/verdict-ml/verdict/internal/tensor"
)

type adBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func tokenBatch(t *testing.T, backend adBackend, batch, maxLen, vocab int) *tensor.Tensor[int32, adBackend] {
	t.Helper()
	data := make([]int32, batch*maxLen)
	for i := range data {
		data[i] = int32(i % vocab)
	}
	indices, err := tensor.FromSlice(data, tensor.Shape{batch, maxLen}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return indices
}

func assertProbabilities(t *testing.T, probs *tensor.Tensor[float32, adBackend], batch int) {
	t.Helper()
	if !probs.Shape().Equal(tensor.Shape{batch, 1}) {
		t.Fatalf("Expected output shape [%d 1], got %v", batch, probs.Shape())
	}
	for i, p := range probs.Data() {
		if p <= 0 || p >= 1 || math.IsNaN(float64(p)) {
			t.Errorf("Output %d is not a probability: %f", i, p)
		}
	}
}

func TestSentimentMLP_Forward(t *testing.T) {
	backend := autodiff.New(cpu.New())

	net := model.NewSentimentMLP[adBackend](50, 12, backend)

	probs := net.Forward(tokenBatch(t, backend, 3, 12, 50))
	assertProbabilities(t, probs, 3)
}

func TestSentimentMLP_ParameterCount(t *testing.T) {
	backend := autodiff.New(cpu.New())

	vocab, maxLen := 50, 12
	net := model.NewSentimentMLP[adBackend](vocab, maxLen, backend)

	// embedding + (maxLen*32 -> 250) + bias + (250 -> 1) + bias
	want := vocab*model.EmbedDim +
		maxLen*model.EmbedDim*model.HiddenDim + model.HiddenDim +
		model.HiddenDim + 1
	if got := model.NumParameters[adBackend](net); got != want {
		t.Errorf("Expected %d parameters, got %d", want, got)
	}
}

func TestSentimentMLP_RejectsWrongWidth(t *testing.T) {
	backend := autodiff.New(cpu.New())

	net := model.NewSentimentMLP[adBackend](50, 12, backend)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for wrong sequence width")
		}
	}()
	net.Forward(tokenBatch(t, backend, 2, 8, 50))
}

func TestSentimentCNN_Forward(t *testing.T) {
	backend := autodiff.New(cpu.New())

	net := model.NewSentimentCNN[adBackend](50, 12, backend)

	probs := net.Forward(tokenBatch(t, backend, 3, 12, 50))
	assertProbabilities(t, probs, 3)
}

func TestSentimentCNN_ParameterCount(t *testing.T) {
	backend := autodiff.New(cpu.New())

	vocab, maxLen := 50, 12
	net := model.NewSentimentCNN[adBackend](vocab, maxLen, backend)

	// embedding + conv weight/bias + two linear layers
	want := vocab*model.EmbedDim +
		model.ConvFilters*model.EmbedDim*model.ConvWindow + model.ConvFilters +
		model.ConvFilters*(maxLen/model.PoolWindow)*model.HiddenDim + model.HiddenDim +
		model.HiddenDim + 1
	if got := model.NumParameters[adBackend](net); got != want {
		t.Errorf("Expected %d parameters, got %d", want, got)
	}
}

func TestSentimentCNN_RejectsOddLength(t *testing.T) {
	backend := autodiff.New(cpu.New())

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for odd sequence length")
		}
	}()
	model.NewSentimentCNN[adBackend](50, 13, backend)
}

// trainSteps runs a few optimization steps on synthetic data and returns the
// first and last batch losses.
func trainSteps(t *testing.T, net model.Model[adBackend], backend adBackend, steps int) (first, last float32) {
	t.Helper()

	cfg := imdb.Config{VocabSize: 50, SkipTop: 0, MaxLen: 12}
	ds := imdb.Synthetic(64, cfg, 1)

	batches, err := imdb.CreateBatches(&ds.Train, cfg.MaxLen, 16, nil, backend)
	if err != nil {
		t.Fatalf("CreateBatches failed: %v", err)
	}

	optimizer := optim.NewAdam(net.Parameters(), optim.AdamConfig{LR: 0.01}, backend)
	backend.Tape().StartRecording()
	defer backend.Tape().StopRecording()

	step := 0
	for step < steps {
		for _, batch := range batches {
			optimizer.ZeroGrad()

			probs := net.Forward(batch.Inputs)
			lossRaw := backend.BinaryCrossEntropy(probs.Raw(), batch.Labels.Raw())
			loss := lossRaw.AsFloat32()[0]

			if math.IsNaN(float64(loss)) || math.IsInf(float64(loss), 0) {
				t.Fatalf("Loss diverged at step %d: %f", step, loss)
			}
			if step == 0 {
				first = loss
			}
			last = loss

			outputGrad, err := tensor.NewRaw(lossRaw.Shape(), lossRaw.DType())
			if err != nil {
				t.Fatalf("NewRaw failed: %v", err)
			}
			outputGrad.AsFloat32()[0] = 1.0

			grads := backend.Tape().Backward(outputGrad, backend)
			optimizer.Step(grads)
			backend.Tape().Clear()

			step++
			if step >= steps {
				break
			}
		}
	}
	return first, last
}

func TestSentimentMLP_LearnsSyntheticData(t *testing.T) {
	backend := autodiff.New(cpu.New())
	net := model.NewSentimentMLP[adBackend](50, 12, backend)

	first, last := trainSteps(t, net, backend, 20)
	if last >= first {
		t.Errorf("Expected loss to decrease, first=%f last=%f", first, last)
	}
}

func TestSentimentCNN_LearnsSyntheticData(t *testing.T) {
	backend := autodiff.New(cpu.New())
	net := model.NewSentimentCNN[adBackend](50, 12, backend)

	first, last := trainSteps(t, net, backend, 20)
	if last >= first {
		t.Errorf("Expected loss to decrease, first=%f last=%f", first, last)
	}
}
