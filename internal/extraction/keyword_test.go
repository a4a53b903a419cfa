package extraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
)

func TestKeywordExtractorMeal(t *testing.T) {
	x := NewKeywordExtractor()

	result, err := x.Extract(context.Background(), "had a peanut butter sandwich for lunch")
	require.NoError(t, err)

	require.Len(t, result.Events, 1)
	event := result.Events[0]
	assert.Equal(t, domain.EventMeal, event.Type)
	assert.Equal(t, "peanut butter sandwich for lunch", event.StringField("meal"))
	// No carbs mentioned: the raw extractor asks, the post-processor decides.
	assert.True(t, event.NeedsClarification)
	assert.Len(t, result.FollowUpQuestions, 1)
}

func TestKeywordExtractorMealWithCarbs(t *testing.T) {
	x := NewKeywordExtractor()

	result, err := x.Extract(context.Background(), "ate a rice bowl, about 45g of carbs")
	require.NoError(t, err)

	require.Len(t, result.Events, 1)
	assert.Equal(t, 45.0, result.Events[0].Fields["carbs"])
	assert.Empty(t, result.FollowUpQuestions)
}

func TestKeywordExtractorMedication(t *testing.T) {
	x := NewKeywordExtractor()

	result, err := x.Extract(context.Background(), "took ibuprofen for a headache")
	require.NoError(t, err)

	require.Len(t, result.Events, 1)
	event := result.Events[0]
	assert.Equal(t, domain.EventMedication, event.Type)
	assert.Equal(t, "ibuprofen", event.StringField("medication"))
}

func TestKeywordExtractorSupplement(t *testing.T) {
	x := NewKeywordExtractor()

	result, err := x.Extract(context.Background(), "took melatonin before bed.")
	require.NoError(t, err)

	require.Len(t, result.Events, 1)
	event := result.Events[0]
	assert.Equal(t, domain.EventSupplement, event.Type)
	assert.Equal(t, "melatonin", event.StringField("supplement"))
}

func TestKeywordExtractorNoCues(t *testing.T) {
	x := NewKeywordExtractor()

	result, err := x.Extract(context.Background(), "feeling fine today")
	require.NoError(t, err)

	assert.Empty(t, result.Events)
	assert.Empty(t, result.FollowUpQuestions)
}

func TestKeywordExtractorDeterminism(t *testing.T) {
	x := NewKeywordExtractor()
	text := "had oatmeal, 30g carbs. took ibuprofen."

	first, err := x.Extract(context.Background(), text)
	require.NoError(t, err)
	second, err := x.Extract(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
