// Package mocks provides centralized mock implementations for testing.
//
// Mocks record their calls and either return canned values or delegate to a
// function field supplied by the test:
//
//	gen := &mocks.MockGenerator{
//	    GenerateCardsFn: func(ctx context.Context, text string, opts parser.Options) ([]domain.Card, error) {
//	        return nil, generation.ErrGenerationFailed
//	    },
//	}
package mocks
