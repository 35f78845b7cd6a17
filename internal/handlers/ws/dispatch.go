package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/grubvote/internal/services/voting"
	"github.com/KirkDiggler/grubvote/internal/telemetry"
)

// handle runs one request and builds its ack
func (c *conn) handle(ctx context.Context, req *Request) *Ack {
	kind := strings.TrimPrefix(req.Type, "session:")

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	data, err := c.dispatch(ctx, kind, req.Data)

	c.h.metrics.RequestsTotal.Add(ctx, 1, telemetry.RequestType(kind, err == nil))

	if err != nil {
		return &Ack{ID: req.ID, Type: TypeAck, Error: c.userMessage(kind, err)}
	}
	return &Ack{ID: req.ID, Type: TypeAck, OK: true, Data: data}
}

// userMessage hides anything that is not a known client-facing error
func (c *conn) userMessage(kind string, err error) string {
	var vErr voting.Error
	if errors.As(err, &vErr) {
		return vErr.Error()
	}

	var tErr Error
	if errors.As(err, &tErr) {
		return tErr.Error()
	}

	c.logger.Error().Err(err).Str("type", kind).Msg("request failed")
	return errInternal
}

func (c *conn) dispatch(ctx context.Context, kind string, raw json.RawMessage) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Interface("panic", r).Str("type", kind).Msg("recovered from panic")
			data, err = nil, fmt.Errorf("panic in %s: %v", kind, r)
		}
	}()

	svc := c.h.service

	switch kind {
	case TypeCreate:
		var p createPayload
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		out, err := svc.CreateSession(ctx, &voting.CreateSessionInput{
			Name:         p.Name,
			Password:     p.Password,
			UserID:       p.UserID,
			Restrictions: p.Restrictions,
			Options:      p.Options,
		})
		if err != nil {
			return nil, err
		}
		c.subscribe(out.Code, out.ParticipantToken)
		return &createResult{Code: out.Code, Token: out.ParticipantToken, State: out.State}, nil

	case TypeJoin:
		var p joinPayload
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		out, err := svc.JoinSession(ctx, &voting.JoinSessionInput{
			Code:          p.Code,
			Password:      p.Password,
			Name:          p.Name,
			UserID:        p.UserID,
			Restrictions:  p.Restrictions,
			ExistingToken: p.Token,
		})
		if err != nil {
			return nil, err
		}
		c.subscribe(p.Code, out.ParticipantToken)
		return &joinResult{Token: out.ParticipantToken, State: out.State}, nil

	case TypeGet:
		var p sessionPayload
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		out, err := svc.GetSession(ctx, &voting.GetSessionInput{Code: p.Code, Token: p.Token})
		if err != nil {
			return nil, err
		}
		c.subscribe(p.Code, p.Token)
		return &stateResult{State: out.State}, nil

	case TypeUpdateSettings:
		var p settingsPayload
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		out, err := svc.UpdateSettings(ctx, &voting.UpdateSettingsInput{
			Code:     p.Code,
			Token:    p.Token,
			Settings: p.Settings,
		})
		if err != nil {
			return nil, err
		}
		return &stateResult{State: out.State}, nil

	case TypeUpdateOptions:
		var p optionsPayload
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		out, err := svc.UpdateOptions(ctx, &voting.UpdateOptionsInput{
			Code:    p.Code,
			Token:   p.Token,
			Options: p.Options,
		})
		if err != nil {
			return nil, err
		}
		return &stateResult{State: out.State}, nil

	case TypeAddUserOptions:
		var p optionsPayload
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		out, err := svc.AddUserOptions(ctx, &voting.AddUserOptionsInput{
			Code:    p.Code,
			Token:   p.Token,
			Options: p.Options,
		})
		if err != nil {
			return nil, err
		}
		return &addOptionsResult{Accepted: out.Accepted, State: out.State}, nil

	case TypeStart:
		var p startPayload
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		out, err := svc.StartVoting(ctx, &voting.StartVotingInput{
			Code:          p.Code,
			Token:         p.Token,
			VotingSeconds: p.VotingSeconds,
			Weights:       p.Weights,
		})
		if err != nil {
			return nil, err
		}
		return &startResult{VotingEndsAt: out.VotingEndsAt, State: out.State}, nil

	case TypeSubmitRatings:
		var p ratingsPayload
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		out, err := svc.SubmitRatings(ctx, &voting.SubmitRatingsInput{
			Code:    p.Code,
			Token:   p.Token,
			Ratings: p.Ratings,
		})
		if err != nil {
			return nil, err
		}
		return &submitResult{Accepted: out.Accepted}, nil

	case TypeEnd:
		var p sessionPayload
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		out, err := svc.EndVoting(ctx, &voting.EndVotingInput{Code: p.Code, Token: p.Token})
		if err != nil {
			return nil, err
		}
		return &endResult{Leaderboard: out.Leaderboard, Winner: out.Winner}, nil

	case TypeExpire:
		var p sessionPayload
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		if _, err := svc.ExpireSession(ctx, &voting.ExpireSessionInput{Code: p.Code}); err != nil {
			return nil, err
		}
		return nil, nil

	case TypeAIGenerate:
		var p generatePayload
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		out, err := svc.GenerateMenu(ctx, &voting.GenerateMenuInput{
			Code:  p.Code,
			Token: p.Token,
			Prefs: p.Prefs,
		})
		if err != nil {
			return nil, err
		}
		return &stateResult{State: out.State}, nil

	default:
		return nil, ErrUnknownType
	}
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return ErrBadRequest
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrBadRequest
	}
	return nil
}
