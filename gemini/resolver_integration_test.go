//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/versefill/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestResolver_Integration_ResolvesOutline(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	r := gemini.NewResolver(client, "", 0)

	res, err := r.Resolve(ctx, "The Spirit of Life\nScripture Reading: Rom. 8:2\nI. The law of the Spirit of life - v. 2\n")

	require.NoError(t, err)
	require.NotEmpty(t, res.Nodes)
	var books []string
	for _, n := range res.Nodes {
		for _, ref := range n.References {
			books = append(books, ref.Book)
		}
	}
	assert.Contains(t, books, "Romans")
}
