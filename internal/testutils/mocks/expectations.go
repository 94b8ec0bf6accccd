// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/engine"
	enginemock "github.com/KirkDiggler/babonus/internal/engine/mock"
	"github.com/KirkDiggler/babonus/internal/proficiency"
	proficiencymock "github.com/KirkDiggler/babonus/internal/proficiency/mock"
)

// ExpectCategoryHydration sets up the category source for a full hydration.
// Categories missing from items return an error.
func ExpectCategoryHydration(ctx context.Context, mockSource *proficiencymock.MockCategorySource, items map[string][]string) {
	for _, category := range proficiency.SRDCategories() {
		keys, ok := items[category]
		if !ok {
			mockSource.EXPECT().
				ListCategoryItems(ctx, category).
				Return(nil, errors.New("category unavailable"))
			continue
		}
		mockSource.EXPECT().
			ListCategoryItems(ctx, category).
			Return(keys, nil)
	}
}

// ExpectEvaluate sets up the engine to match the bonuses for any roll of the kind
func ExpectEvaluate(mockEngine *enginemock.MockEngine, kind babonus.Type, bonuses ...*babonus.Bonus) *gomock.Call {
	return mockEngine.EXPECT().
		Evaluate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *engine.EvaluateInput) (*engine.EvaluateOutput, error) {
			if input.Roll == nil || input.Roll.Kind != kind {
				return &engine.EvaluateOutput{}, nil
			}
			return &engine.EvaluateOutput{Bonuses: bonuses}, nil
		})
}
