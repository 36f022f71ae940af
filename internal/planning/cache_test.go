package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aisimcore/simcore/internal/domain"
)

func TestNewPromptKey_ShouldSortToolNames_SoPermutationsMatch(t *testing.T) {
	a := NewPromptKey("do the thing", "gpt", 0.2, []string{"MoveTo", "Throw"})
	b := NewPromptKey("do the thing", "gpt", 0.2, []string{"Throw", "MoveTo"})

	assert.Equal(t, a.String(), b.String())
}

func TestNewPromptKey_ShouldNormalizeWhitespaceAndCase(t *testing.T) {
	a := NewPromptKey("  Do   The Thing ", "gpt", 0.2, nil)
	b := NewPromptKey("do the thing", "gpt", 0.2, nil)

	assert.Equal(t, a.String(), b.String())
}

func TestCache_Get_ShouldReturnMiss_WhenEmpty(t *testing.T) {
	c := NewCache(4)

	result := c.Get(NewPromptKey("hi", "gpt", 0, nil))

	assert.Equal(t, Miss, result.Kind)
}

func TestCache_PutGet_ShouldRoundTripExactHit(t *testing.T) {
	c := NewCache(4)
	key := NewPromptKey("advance on target", "gpt", 0.2, nil)
	plan := domain.PlanIntent{PlanID: "plan-1"}

	c.Put(key, CachedPlan{Plan: plan})
	result := c.Get(key)

	assert.Equal(t, HitExact, result.Kind)
	assert.Equal(t, "plan-1", result.Plan.PlanID)
}

func TestCache_Get_ShouldEvictLeastRecentlyUsed_WhenOverCapacity(t *testing.T) {
	c := NewCache(2)
	c.Put(NewPromptKey("alpha", "gpt", 0, nil), CachedPlan{Plan: domain.PlanIntent{PlanID: "a"}})
	c.Put(NewPromptKey("beta", "gpt", 0, nil), CachedPlan{Plan: domain.PlanIntent{PlanID: "b"}})
	c.Put(NewPromptKey("gamma", "gpt", 0, nil), CachedPlan{Plan: domain.PlanIntent{PlanID: "c"}})

	result := c.Get(NewPromptKey("alpha", "gpt", 0, nil))

	assert.Equal(t, Miss, result.Kind)
	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestCache_Get_ShouldFindSimilarEntry_AboveThreshold(t *testing.T) {
	c := NewCache(4).WithSimilarity(TokenSetSimilarity, 0.5)
	c.Put(NewPromptKey("advance on target now", "gpt", 0, nil), CachedPlan{Plan: domain.PlanIntent{PlanID: "near"}})

	result := c.Get(NewPromptKey("advance on target soon", "gpt", 0, nil))

	assert.Equal(t, HitSimilar, result.Kind)
	assert.Equal(t, "near", result.Plan.PlanID)
}

func TestCache_Get_ShouldIgnoreSimilarEntry_WhenModelDiffers(t *testing.T) {
	c := NewCache(4)
	c.Put(NewPromptKey("advance on target", "gpt-a", 0, nil), CachedPlan{Plan: domain.PlanIntent{PlanID: "x"}})

	result := c.Get(NewPromptKey("advance on target", "gpt-b", 0, nil))

	assert.Equal(t, Miss, result.Kind)
}

func TestCache_Clear_ShouldResetEntriesAndCounters(t *testing.T) {
	c := NewCache(4)
	c.Put(NewPromptKey("alpha", "gpt", 0, nil), CachedPlan{Plan: domain.PlanIntent{PlanID: "a"}})
	c.Get(NewPromptKey("alpha", "gpt", 0, nil))

	c.Clear()

	assert.Equal(t, CacheStats{}, c.Stats())
	assert.Equal(t, Miss, c.Get(NewPromptKey("alpha", "gpt", 0, nil)).Kind)
}

func TestTokenSetSimilarity_ShouldBeSymmetric(t *testing.T) {
	a := "advance on target now"
	b := "advance on target soon"

	assert.Equal(t, TokenSetSimilarity(a, b), TokenSetSimilarity(b, a))
}

func TestTokenSetSimilarity_ShouldBeOne_ForBothEmpty(t *testing.T) {
	assert.Equal(t, 1.0, TokenSetSimilarity("", ""))
}

func TestTokenSetSimilarity_ShouldBeZero_WhenOneSideEmpty(t *testing.T) {
	assert.Equal(t, 0.0, TokenSetSimilarity("", "something"))
}
