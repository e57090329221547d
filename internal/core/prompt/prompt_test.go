package prompt

import (
	"strings"
	"testing"

	"github.com/agenthands/orderbot/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestContextLine(t *testing.T) {
	item := model.NormalizedItem{Name: "Zinger Burger", Category: "Burgers", Price: 650.0, Description: "Spicy."}

	assert.Equal(t, "2. Zinger Burger (Burgers) — Rs.650.0. Spicy.", ContextLine(2, item))
}

func TestContextLine_DefaultedItem(t *testing.T) {
	assert.Equal(t, "1.  () — Rs.0.0. ", ContextLine(1, model.NormalizedItem{}))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "650.0", FormatPrice(650))
	assert.Equal(t, "12.5", FormatPrice(12.5))
	assert.Equal(t, "1200.0", FormatPrice(1200))
	assert.Equal(t, "0.0", FormatPrice(0))
	assert.Equal(t, "0.1", FormatPrice(0.1))
}

func TestContextBlock(t *testing.T) {
	items := []model.NormalizedItem{
		{Name: "B", Category: "x", Price: 2},
		{Name: "A", Category: "y", Price: 1},
		{Name: "B", Category: "x", Price: 2},
	}

	block := ContextBlock(items)

	assert.Equal(t, "1. B (x) — Rs.2.0. \n2. A (y) — Rs.1.0. \n3. B (x) — Rs.2.0. ", block)
	assert.Equal(t, "", ContextBlock(nil))
}

func TestBuild(t *testing.T) {
	a := NewAssembler("")
	items := []model.NormalizedItem{{Name: "Fajita Pizza", Category: "Pizza", Price: 1299, Description: "Chicken fajita."}}

	out := a.Build(items, "cheap vegetarian pizza")

	assert.Contains(t, out, "1. Fajita Pizza (Pizza) — Rs.1299.0. Chicken fajita.")
	assert.Contains(t, out, "USER QUESTION:\ncheap vegetarian pizza\n")
	assert.Contains(t, out, "Only use information from the provided context")
	assert.NotContains(t, out, ContextPlaceholder)
	assert.NotContains(t, out, QuestionPlaceholder)
	assert.Equal(t, out, a.Build(items, "cheap vegetarian pizza"))
}

func TestBuild_CustomTemplate(t *testing.T) {
	a := NewAssembler("Q={question}\nC={context}")

	out := a.Build([]model.NormalizedItem{{Name: "Tea", Category: "Drinks", Price: 90}}, "tea?")

	assert.Equal(t, "Q=tea?\nC=1. Tea (Drinks) — Rs.90.0. ", out)
}

func TestBuild_QueryIsNotRescanned(t *testing.T) {
	a := NewAssembler("{question}|{context}")

	out := a.Build(nil, "what is {context}?")

	assert.Equal(t, "what is {context}?|", out)
}

func TestBuild_DoesNotTruncate(t *testing.T) {
	items := make([]model.NormalizedItem, 200)
	for i := range items {
		items[i] = model.NormalizedItem{Name: "Item", Category: "C", Price: float64(i)}
	}

	out := NewAssembler("{context}").Build(items, "q")

	assert.Equal(t, 200, len(strings.Split(out, "\n")))
	assert.True(t, strings.HasPrefix(strings.Split(out, "\n")[199], "200. "))
}
