package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgen/internal/models"
)

func TestBuild_Deterministic(t *testing.T) {
	b := New()
	contexts := []string{"first context", "second context"}

	p1, err := b.Build(models.UseCaseChecksheet, contexts, "focus on safety")
	require.NoError(t, err)
	p2, err := b.Build(models.UseCaseChecksheet, contexts, "focus on safety")
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
}

func TestBuild_ContextInRetrievalOrder(t *testing.T) {
	b := New()
	p, err := b.Build(models.UseCaseWorkInstruction, []string{"alpha", "beta", "gamma"}, "")
	require.NoError(t, err)

	ia := strings.Index(p, "alpha")
	ib := strings.Index(p, "beta")
	ic := strings.Index(p, "gamma")
	require.True(t, ia >= 0 && ib >= 0 && ic >= 0)
	assert.Less(t, ia, ib)
	assert.Less(t, ib, ic)
}

func TestBuild_UseCaseTemplates(t *testing.T) {
	b := New()

	cs, err := b.Build(models.UseCaseChecksheet, []string{"ctx"}, "")
	require.NoError(t, err)
	assert.Contains(t, cs, `"Field: Value"`)

	wi, err := b.Build(models.UseCaseWorkInstruction, []string{"ctx"}, "")
	require.NoError(t, err)
	assert.Contains(t, wi, "one step per line")
}

func TestBuild_UnknownUseCase(t *testing.T) {
	_, err := New().Build(models.UseCase("summary"), []string{"ctx"}, "")
	assert.Error(t, err)
}

func TestBuild_ExtraInstructionAppended(t *testing.T) {
	p, err := New().Build(models.UseCaseChecksheet, []string{"ctx"}, "include revision column")
	require.NoError(t, err)
	assert.Contains(t, p, "include revision column")
}

func TestBuild_BudgetDropsLowestRanked(t *testing.T) {
	b := New(WithContextBudget(20))
	p, err := b.Build(models.UseCaseChecksheet, []string{"exactly ten", "another ten", "dropped entry"}, "")
	require.NoError(t, err)

	assert.Contains(t, p, "exactly ten")
	assert.NotContains(t, p, "dropped entry")
}

func TestBuild_FirstContextKeptEvenOverBudget(t *testing.T) {
	b := New(WithContextBudget(5))
	p, err := b.Build(models.UseCaseChecksheet, []string{"longer than the budget"}, "")
	require.NoError(t, err)
	assert.Contains(t, p, "longer than the budget")
}
