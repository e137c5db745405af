package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDeterministic(t *testing.T) {
	ctx := BusinessContext{
		BusinessName: "Acme Plumbing",
		BusinessInfo: "Open 9-5 weekdays. Emergency callouts available.",
		SalesRepName: "Dana",
	}
	first := Build(ctx, "Do you fix boilers?")
	second := Build(ctx, "Do you fix boilers?")
	assert.Equal(t, first, second)
}

func TestBuildIncludesBusinessContext(t *testing.T) {
	ctx := BusinessContext{
		BusinessName: "Acme Plumbing",
		BusinessInfo: "Open 9-5 weekdays.",
		SalesRepName: "Dana",
	}
	out := Build(ctx, "hi")

	assert.Contains(t, out, "Business Name: Acme Plumbing")
	assert.Contains(t, out, "Sales Representative: Dana")
	assert.Contains(t, out, "Business Information:\nOpen 9-5 weekdays.")
	assert.Contains(t, out, "Respond as Dana from Acme Plumbing")
}

func TestBuildOmitsEmptyFields(t *testing.T) {
	out := Build(BusinessContext{BusinessName: "Acme Plumbing"}, "hi")

	assert.Contains(t, out, "Business Name: Acme Plumbing")
	assert.NotContains(t, out, "Sales Representative:")
	assert.NotContains(t, out, "Business Information:")
	assert.NotContains(t, out, "Respond as")
}

func TestBuildWithoutSettings(t *testing.T) {
	out := Build(BusinessContext{}, "hi")

	assert.NotContains(t, out, "Business Name:")
	assert.Contains(t, out, "Instructions for responses:")
	assert.Contains(t, out, "Keep responses under 100 words")
	assert.Contains(t, out, "Only reference provided business information")
}

func TestBuildUserMessageIsFinalLine(t *testing.T) {
	out := Build(BusinessContext{BusinessName: "Acme"}, "What are your hours?")
	assert.True(t, strings.HasSuffix(out, "User message: What are your hours?"))
}

func TestBuildDoesNotInventFacts(t *testing.T) {
	// Nothing outside the supplied context and the fixed instruction text
	// may appear; a sentinel absent from the inputs must stay absent.
	out := Build(BusinessContext{BusinessName: "Acme"}, "hi")
	assert.NotContains(t, out, "discount")
	assert.NotContains(t, out, "guarantee")
}
