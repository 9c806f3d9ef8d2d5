package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spboyer/llmcompare/internal/catalog"
	"github.com/spboyer/llmcompare/internal/query"
	"github.com/spboyer/llmcompare/internal/webapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeList(t *testing.T, out string) webapi.ModelListResponse {
	t.Helper()
	var resp webapi.ModelListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}

func viewIDs(vs []webapi.ModelView) []string {
	ids := make([]string, len(vs))
	for i, v := range vs {
		ids[i] = v.ID
	}
	return ids
}

// ---------------------------------------------------------------------------
// list
// ---------------------------------------------------------------------------

func TestList_Table(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "list")

	for _, id := range []string{"alpha", "beta", "gamma", "delta"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "128,000")
	assert.Contains(t, out, "Gamma (new)")
	assert.Contains(t, out, "4 of 4 models")
}

func TestList_Filters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"provider", []string{"--provider", "openai"}, []string{"alpha"}},
		{"providers are ORed", []string{"--provider", "OpenAI,Meta"}, []string{"alpha", "delta"}},
		{"year", []string{"--year", "2025"}, []string{"gamma", "delta"}},
		{"context bucket", []string{"--context", "1M+"}, []string{"gamma"}},
		{"capabilities are ANDed", []string{"--capability", "chat", "--capability", "coding"}, []string{"alpha"}},
		{"search", []string{"--search", "MULTIMODAL"}, []string{"alpha"}},
		{"missing score counts as zero", []string{"--min-humaneval", "1"}, []string{"alpha", "gamma"}},
		{"sort", []string{"--sort", "inputCost"}, []string{"delta", "beta", "gamma", "alpha"}},
		{"sort desc", []string{"--sort", "contextWindow", "--order", "desc"}, []string{"gamma", "beta", "alpha", "delta"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			out := env.mustRun(t, append([]string{"list", "-f", "json"}, tt.args...)...)
			resp := decodeList(t, out)
			assert.Equal(t, tt.want, viewIDs(resp.Models))
			assert.Equal(t, 4, resp.Total)
			assert.Equal(t, len(tt.want), resp.Count)
		})
	}
}

func TestList_JSONIncludesDerivedFields(t *testing.T) {
	env := newTestEnv(t)
	resp := decodeList(t, env.mustRun(t, "list", "-f", "json", "--provider", "Google"))
	require.Len(t, resp.Models, 1)
	g := resp.Models[0]
	assert.Equal(t, "1M+", g.ContextBucket)
	assert.Equal(t, 10, g.BooksInContext)
	assert.InDelta(t, 3.125, g.AvgCostPer1M, 1e-9)
	assert.Equal(t, query.SortNone, resp.Query.Sort)
}

func TestList_CSV(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "list", "-f", "csv", "--provider", "Meta")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,name,provider"))
	assert.True(t, strings.HasPrefix(lines[1], "delta,Delta,Meta,2025,8000"))
}

func TestList_FavoritesOnly(t *testing.T) {
	env := newTestEnv(t)

	resp := decodeList(t, env.mustRun(t, "list", "-f", "json", "--favorites"))
	assert.Empty(t, resp.Models, "no favorites yet")

	env.mustRun(t, "favorites", "add", "gamma", "beta")
	resp = decodeList(t, env.mustRun(t, "list", "-f", "json", "--favorites"))
	assert.Equal(t, []string{"beta", "gamma"}, viewIDs(resp.Models))

	out := env.mustRun(t, "list")
	assert.Contains(t, out, "★")
}

func TestList_NoMatches(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "list", "--search", "whisper")
	assert.Contains(t, out, "No models match")
}

func TestList_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"format", []string{"-f", "xml"}},
		{"bucket", []string{"--context", "2M+"}},
		{"sort key", []string{"--sort", "speed"}},
		{"order", []string{"--order", "sideways"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.run(t, append([]string{"list"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

// ---------------------------------------------------------------------------
// show
// ---------------------------------------------------------------------------

func TestShow_Table(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "favorites", "add", "alpha")

	out := env.mustRun(t, "show", "alpha")
	assert.Contains(t, out, "★ Alpha")
	assert.Contains(t, out, "128,000 tokens (100K-500K)")
	assert.Contains(t, out, "$2.50")
	assert.Contains(t, out, "$6.25")
	assert.Contains(t, out, "• Coding assistants")
}

func TestShow_MissingScoresAreNotAvailable(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "show", "delta")
	assert.Contains(t, out, notAvailable)
	assert.Contains(t, out, "$0.10")
}

func TestShow_JSON(t *testing.T) {
	env := newTestEnv(t)
	var detail webapi.ModelDetail
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "show", "beta", "-f", "json")), &detail))
	assert.Equal(t, "beta", detail.ID)
	assert.Equal(t, "100K-500K", detail.ContextBucket)
}

func TestShow_UnknownModel(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "show", "nope")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

// ---------------------------------------------------------------------------
// alternatives
// ---------------------------------------------------------------------------

func TestAlternatives_JSON(t *testing.T) {
	env := newTestEnv(t)

	var resp webapi.AlternativesResponse
	out := env.mustRun(t, "alternatives", "alpha", "--kind", "cheaper", "-f", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "alpha", resp.Reference)
	// Closest price first; delta shares no tag.
	assert.Equal(t, []string{"gamma", "beta"}, []string{resp.Cheaper[0].ID, resp.Cheaper[1].ID})
	assert.Len(t, resp.Cheaper, 2)
	assert.Nil(t, resp.Similar)
	assert.Nil(t, resp.Better)
}

func TestAlternatives_Table(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "alternatives", "beta")

	assert.Contains(t, out, "Alternatives to Beta")
	assert.Contains(t, out, "Similar")
	assert.Contains(t, out, "Cheaper")
	assert.Contains(t, out, "Better performance")
	assert.Contains(t, out, "none")
}

func TestAlternatives_UnknownKind(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "alternatives", "alpha", "--kind", "faster")
	assert.Error(t, err)
}
