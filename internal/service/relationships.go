package service

import (
	"context"
	"errors"

	dom "github.com/gdps-go/gdps/internal/ports"
)

type RelationshipService struct{ d *Deps }

// Block records that userID blocks targetID. Both friendship edges are
// removed, not only the blocker's.
func (s *RelationshipService) Block(ctx context.Context, userID, targetID int) error {
	if userID == targetID {
		return fail(RelationshipInvalidTargetID)
	}
	if _, err := s.d.Users.FromID(ctx, targetID); err != nil {
		return orKind(err, RelationshipInvalidTargetID)
	}
	if _, err := s.d.Relationships.Between(ctx, dom.RelationshipBlocked, userID, targetID); err == nil {
		return fail(RelationshipExists)
	} else if !errors.Is(err, dom.ErrNotFound) {
		return err
	}
	return s.d.inTx(ctx, func(ctx context.Context) error {
		if err := s.unfriend(ctx, userID, targetID); err != nil && !IsKind(err, RelationshipNotFound) {
			return err
		}
		return s.d.Relationships.Create(ctx, &dom.UserRelationship{
			Type:         dom.RelationshipBlocked,
			UserID:       userID,
			TargetUserID: targetID,
			PostTs:       s.d.Now(),
		})
	})
}

func (s *RelationshipService) Unblock(ctx context.Context, userID, targetID int) error {
	rel, err := s.d.Relationships.Between(ctx, dom.RelationshipBlocked, userID, targetID)
	if err != nil {
		return orKind(err, RelationshipNotFound)
	}
	return s.d.Relationships.Delete(ctx, rel.ID)
}

// RemoveFriend ends the friendship in both directions.
func (s *RelationshipService) RemoveFriend(ctx context.Context, userID, targetID int) error {
	if userID == targetID {
		return fail(RelationshipInvalidTargetID)
	}
	return s.d.inTx(ctx, func(ctx context.Context) error {
		return s.unfriend(ctx, userID, targetID)
	})
}

func (s *RelationshipService) unfriend(ctx context.Context, a, b int) error {
	found := false
	for _, pair := range [][2]int{{a, b}, {b, a}} {
		rel, err := s.d.Relationships.Between(ctx, dom.RelationshipFriend, pair[0], pair[1])
		if errors.Is(err, dom.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		found = true
		if err := s.d.Relationships.Delete(ctx, rel.ID); err != nil {
			return err
		}
	}
	if !found {
		return fail(RelationshipNotFound)
	}
	return nil
}

// Listed is one row of a friend or block list.
type Listed struct {
	User   *dom.User
	Unseen bool
}

// List returns userID's friends or blocked users and marks them seen.
func (s *RelationshipService) List(ctx context.Context, userID int, t dom.RelationshipType) ([]Listed, error) {
	rels, err := s.d.Relationships.ListForUser(ctx, t, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(rels))
	for _, r := range rels {
		ids = append(ids, r.TargetUserID)
	}
	users, err := s.d.Users.FromIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*dom.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	out := make([]Listed, 0, len(rels))
	for _, r := range rels {
		if u, ok := byID[r.TargetUserID]; ok {
			out = append(out, Listed{User: u, Unseen: r.SeenTs == nil})
		}
	}
	if err := s.d.Relationships.MarkAllSeen(ctx, t, userID, s.d.Now()); err != nil {
		return nil, err
	}
	return out, nil
}
