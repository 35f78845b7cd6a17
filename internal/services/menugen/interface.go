package menugen

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/KirkDiggler/grubvote/internal/services/menugen Generator

// Generator suggests menu options from free-text preferences
type Generator interface {
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
}
