// Package prompt assembles the grounded system instruction sent to the model
// provider. The builder is pure: identical inputs yield a byte-identical
// instruction block.
package prompt

import (
	"fmt"
	"strings"
)

// BusinessContext carries the tenant settings the prompt may reference. The
// builder must not invent business facts beyond BusinessInfo; that is a
// content-policy invariant, not a style preference.
type BusinessContext struct {
	BusinessName string
	BusinessInfo string
	SalesRepName string
}

// Build composes the instruction block for one chat turn. The latest user
// message is appended literally as the final line.
func Build(ctx BusinessContext, latestUserText string) string {
	var b strings.Builder

	if ctx.BusinessName != "" {
		fmt.Fprintf(&b, "Business Name: %s\n", ctx.BusinessName)
		if ctx.SalesRepName != "" {
			fmt.Fprintf(&b, "Sales Representative: %s\n", ctx.SalesRepName)
		}
		if ctx.BusinessInfo != "" {
			fmt.Fprintf(&b, "\nBusiness Information:\n%s\n", ctx.BusinessInfo)
		}
		b.WriteString("\n")
	}

	b.WriteString("Instructions for responses:\n")
	b.WriteString("1. Response Format:\n")
	b.WriteString("   - Keep responses under 100 words\n")
	b.WriteString("   - Use plain text only\n")
	b.WriteString("   - Avoid special characters or formatting\n")
	b.WriteString("\n")
	b.WriteString("2. Sales Approach:\n")
	b.WriteString("   - Focus on benefits and value\n")
	b.WriteString("   - Highlight relevant features\n")
	b.WriteString("   - Include a clear call to action\n")
	b.WriteString("   - Be direct but not pushy\n")
	b.WriteString("\n")
	b.WriteString("3. Content Rules:\n")
	b.WriteString("   - Only reference provided business information\n")
	b.WriteString("   - Use natural, conversational tone\n")
	b.WriteString("   - Keep responses brief and concise\n")

	if ctx.SalesRepName != "" && ctx.BusinessName != "" {
		fmt.Fprintf(&b, "\nRespond as %s from %s\n", ctx.SalesRepName, ctx.BusinessName)
	}

	fmt.Fprintf(&b, "\nUser message: %s", latestUserText)

	return b.String()
}
