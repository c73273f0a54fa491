package menu

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlindemann/menucard-importer/internal/common"
	"github.com/mlindemann/menucard-importer/internal/llm"
)

// clientFunc adapts a function to the completion client interface so tests
// can script responses per prompt.
type clientFunc func(ctx context.Context, prompt string, opts llm.Options) (string, error)

func (f clientFunc) GenerateText(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	return f(ctx, prompt, opts)
}

func TestStructure_TwoSizesBecomeTwoRecords(t *testing.T) {
	client := clientFunc(func(_ context.Context, _ string, _ llm.Options) (string, error) {
		return `[
			{"name":"Cola 0,33l","price":250,"warengruppe":"Getränke","hauptgruppe":"THEKE","steuersatz":19,"ordergruppe":"THEKE","ausser_haus":0},
			{"name":"Cola 0,5l","price":300,"warengruppe":"Getränke","hauptgruppe":"THEKE","steuersatz":19,"ordergruppe":"THEKE","ausser_haus":0}
		]`, nil
	})
	engine := NewEngine(client, 0, nil)

	res, err := engine.Structure(context.Background(), "Cola 0,33l 2,50 / 0,5l 3,00")
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	assert.Equal(t, "Cola 0,33l", res.Items[0].Name)
	assert.Equal(t, 250, res.Items[0].Price)
	assert.Equal(t, "Cola 0,5l", res.Items[1].Name)
	assert.Equal(t, 300, res.Items[1].Price)
	for _, it := range res.Items {
		assert.Equal(t, 1, it.Quantity, "quantity defaults to 1 when absent")
		assert.Equal(t, 19, it.Steuersatz)
		assert.Equal(t, "THEKE", it.Ordergruppe)
		assert.Equal(t, 0, it.AusserHaus)
	}
	assert.Zero(t, res.FailedChunks())
	assert.Zero(t, res.DroppedItems())
}

func TestStructure_DropsElementsMissingRequiredKeys(t *testing.T) {
	client := clientFunc(func(_ context.Context, _ string, _ llm.Options) (string, error) {
		// Second element has no price, third has a non-integer price.
		return `[
			{"name":"Schnitzel","price":1290,"warengruppe":"Hauptgerichte","hauptgruppe":"KÜCHE","steuersatz":7,"ordergruppe":"KÜCHE WARM","ausser_haus":1},
			{"name":"Tagessuppe","warengruppe":"Vorspeisen","hauptgruppe":"KÜCHE","steuersatz":7,"ordergruppe":"KÜCHE WARM","ausser_haus":1},
			{"name":"Salat","price":"4,50","warengruppe":"Vorspeisen","hauptgruppe":"KÜCHE","steuersatz":7,"ordergruppe":"KÜCHE WARM","ausser_haus":1}
		]`, nil
	})
	engine := NewEngine(client, 0, nil)

	res, err := engine.Structure(context.Background(), "Schnitzel 12,90\nTagessuppe\nSalat 4,50")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Schnitzel", res.Items[0].Name)
	assert.Equal(t, 2, res.DroppedItems())
	require.Len(t, res.Chunks, 1)
	assert.Equal(t, 1, res.Chunks[0].Items)
	assert.Equal(t, 2, res.Chunks[0].Dropped)
}

func TestStructure_PreservesChunkOrder(t *testing.T) {
	item := func(name string) string {
		return `{"name":"` + name + `","price":100,"warengruppe":"W","hauptgruppe":"KÜCHE","steuersatz":7,"ordergruppe":"KÜCHE WARM","ausser_haus":1}`
	}
	client := clientFunc(func(_ context.Context, prompt string, _ llm.Options) (string, error) {
		switch {
		case strings.Contains(prompt, "aaaaa"):
			return "[" + item("first") + "]", nil
		case strings.Contains(prompt, "bbbbb"):
			return "[" + item("second") + "]", nil
		default:
			return "[" + item("third") + "]", nil
		}
	})
	engine := NewEngine(client, 5, nil)

	res, err := engine.Structure(context.Background(), "aaaaabbbbbccccc")
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{res.Items[0].Name, res.Items[1].Name, res.Items[2].Name})
	require.Len(t, res.Chunks, 3)
	for i, c := range res.Chunks {
		assert.Equal(t, i, c.Index)
	}
}

func TestStructure_FailedChunkDoesNotAbortOthers(t *testing.T) {
	calls := 0
	client := clientFunc(func(_ context.Context, _ string, _ llm.Options) (string, error) {
		calls++
		if calls == 2 {
			return "", errors.New("upstream timeout")
		}
		return `[{"name":"Pommes","price":350,"warengruppe":"Beilagen","hauptgruppe":"KÜCHE","steuersatz":7,"ordergruppe":"KÜCHE WARM","ausser_haus":1}]`, nil
	})
	engine := NewEngine(client, 4, nil)

	res, err := engine.Structure(context.Background(), "aaaabbbbcccc")
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 1, res.FailedChunks())
	require.Len(t, res.Chunks, 3)
	assert.Empty(t, res.Chunks[0].Error)
	assert.Contains(t, res.Chunks[1].Error, "upstream timeout")
	assert.Empty(t, res.Chunks[2].Error)
}

func TestStructure_UnparseableChunkIsRecorded(t *testing.T) {
	client := clientFunc(func(_ context.Context, _ string, _ llm.Options) (string, error) {
		return "I cannot read this menu.", nil
	})
	engine := NewEngine(client, 0, nil)

	res, err := engine.Structure(context.Background(), "Pizza 9,00")
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, res.FailedChunks())
	assert.Equal(t, len(res.Chunks), res.FailedChunks(), "every chunk failed")
}

func TestStructure_EmptyTextFails(t *testing.T) {
	engine := NewEngine(clientFunc(func(_ context.Context, _ string, _ llm.Options) (string, error) {
		t.Fatal("completion must not be called for empty text")
		return "", nil
	}), 0, nil)

	for _, text := range []string{"", "   \n\t  "} {
		_, err := engine.Structure(context.Background(), text)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNoExtractableText)
	}
}

func TestStructure_QuantityIsKeptWhenPresent(t *testing.T) {
	client := clientFunc(func(_ context.Context, _ string, _ llm.Options) (string, error) {
		return `[{"name":"Brötchen","quantity":2,"price":120,"warengruppe":"Beilagen","hauptgruppe":"KÜCHE","steuersatz":7,"ordergruppe":"KÜCHE WARM","ausser_haus":1}]`, nil
	})
	engine := NewEngine(client, 0, nil)

	res, err := engine.Structure(context.Background(), "2 Brötchen 1,20")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.Items[0].Quantity)
}
