package main

import (
	"fmt"

	"github.com/kbukum/lambdakit/errors"
)

// customErrors extends the default codes with the handler's own failures.
func customErrors() errors.Registry {
	return errors.Registry{
		"ERR_BODY": errors.FromResolver(func(args ...any) errors.Descriptor {
			return errors.Descriptor{
				Code:    "ERR_BODY",
				Message: "Malformed request body.",
				Detail:  firstArg(args),
			}
		}),
		"ERR_LANGUAGE": errors.FromResolver(func(args ...any) errors.Descriptor {
			return errors.Descriptor{
				Code:    "ERR_LANGUAGE",
				Message: "Unsupported language.",
				Detail:  fmt.Sprintf("No greeting available for language: %v", firstArg(args)),
			}
		}),
	}
}

func firstArg(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}
