package main

import (
	"fmt"

	"github.com/fwojciec/pagesense"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	outcome := deps.Client.HandleSubmit(deps.Ctx, c.URL)
	if outcome.Alert != "" {
		if outcome.Err != nil {
			deps.Logger.Debug("check failed", "url", c.URL, "err", outcome.Err)
		}
		code := pagesense.EUNAVAILABLE
		if outcome.Err == nil {
			code = pagesense.EINVALID
		}
		return pagesense.Errorf(code, "%s", outcome.Alert)
	}

	html, err := outcome.Results.HTML()
	if err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}
	if c.Format == "html" {
		fmt.Fprintln(deps.Stdout, html)
		return nil
	}

	md, err := deps.Converter.Convert(html)
	if err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}
	fmt.Fprintln(deps.Stdout, md)
	return nil
}
