// Package draft keeps in-progress onboarding answers per learner and flow until they are committed.
package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DraftVersion tags every stored draft. Drafts carrying another tag are discarded on load.
const DraftVersion = "draft.v1"

type FlowType string

const (
	FlowQuick FlowType = "quick"
	FlowFull  FlowType = "full"
)

var (
	ErrInvalidFlowType = errors.New("invalid draft flow type")
	ErrInvalidUserID   = errors.New("invalid draft user id")
)

// Flows lists every flow a learner can hold a draft for.
func Flows() []FlowType { return []FlowType{FlowQuick, FlowFull} }

func ParseFlowType(s string) (FlowType, error) {
	switch f := FlowType(strings.ToLower(strings.TrimSpace(s))); f {
	case FlowQuick, FlowFull:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFlowType, s)
	}
}

type Draft struct {
	Version   string         `json:"version"`
	UserID    int64          `json:"user_id"`
	Flow      FlowType       `json:"flow_type"`
	Data      map[string]any `json:"data"`
	LastStep  *int           `json:"last_step,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store persists drafts. Writes are last-writer-wins.
type Store interface {
	// Save shallow-merges partial into the stored draft (top-level keys overwrite) and bumps
	// UpdatedAt. A nil step keeps the previous LastStep.
	Save(ctx context.Context, userID int64, flow FlowType, step *int, partial map[string]any) (*Draft, error)
	// Load returns nil when no usable draft exists.
	Load(ctx context.Context, userID int64, flow FlowType) (*Draft, error)
	Clear(ctx context.Context, userID int64, flow FlowType) error
}

func checkKey(userID int64, flow FlowType) error {
	if userID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidUserID, userID)
	}
	if flow != FlowQuick && flow != FlowFull {
		return fmt.Errorf("%w: %q", ErrInvalidFlowType, flow)
	}
	return nil
}

func merge(prev *Draft, userID int64, flow FlowType, step *int, partial map[string]any, now time.Time) *Draft {
	next := &Draft{
		Version:   DraftVersion,
		UserID:    userID,
		Flow:      flow,
		Data:      map[string]any{},
		UpdatedAt: now,
	}
	if prev != nil {
		for k, v := range prev.Data {
			next.Data[k] = v
		}
		next.LastStep = prev.LastStep
		if !now.After(prev.UpdatedAt) {
			next.UpdatedAt = prev.UpdatedAt.Add(time.Millisecond)
		}
	}
	for k, v := range partial {
		next.Data[k] = v
	}
	if step != nil {
		s := *step
		next.LastStep = &s
	}
	return next
}
