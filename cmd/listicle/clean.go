package main

import (
	"fmt"

	"github.com/fwojciec/listicle"
	"github.com/fwojciec/listicle/extract"
)

// Run executes the clean command.
func (c *CleanCmd) Run(deps *Dependencies) error {
	pipeline := &extract.Pipeline{Fetcher: deps.Fetcher, Sanitizer: deps.Sanitizer}

	doc, err := pipeline.Document(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", listicle.ErrorMessage(err))
		return err
	}

	content := doc.HTML
	if c.Markdown {
		if content, err = deps.Converter.Convert(doc.HTML); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", listicle.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "TITLE: %s\n\n%s\n", doc.Title, content)

	if c.Tokens {
		prompt := extract.SystemPrompt() + "\n" + extract.BuildUserPrompt(doc)
		n, err := deps.TokenCounter.CountTokens(deps.Ctx, prompt)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", listicle.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "tokens: %d\n", n)
	}

	return nil
}
