package session

import "github.com/KirkDiggler/grubvote/internal/models"

type CreateSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	Code string
}

type DeleteSessionInput struct {
	Code string
}

type ListSessionsInput struct {
}

type ListSessionsOutput struct {
	Sessions []*models.Session
}
