package service

import (
	"context"
	"errors"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

type CommentService struct{ d *Deps }

func validComment(content string) bool {
	return content != "" && len(content) <= TextMaxBytes
}

// PostLevelComment comments on a live level.
func (s *CommentService) PostLevelComment(ctx context.Context, userID, levelID int, content string, percent int) (*dom.LevelComment, error) {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.Privileges.Has(privilege.CommentsPost) {
		return nil, fail(CommentsNoPrivilege)
	}
	if !validComment(content) {
		return nil, fail(CommentsInvalidContent)
	}
	l, err := s.d.Levels.FromID(ctx, levelID)
	if errors.Is(err, dom.ErrNotFound) || (err == nil && l.Deleted) {
		return nil, fail(CommentsTargetNotFound)
	}
	if err != nil {
		return nil, err
	}
	c := &dom.LevelComment{
		UserID:  userID,
		LevelID: levelID,
		Content: content,
		Percent: min(max(percent, 0), 100),
		PostTs:  s.d.Now(),
	}
	if err := s.d.LevelComments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// PostUserComment posts on the author's own profile.
func (s *CommentService) PostUserComment(ctx context.Context, userID int, content string) (*dom.UserComment, error) {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.Privileges.Has(privilege.UserCreateUserComments) {
		return nil, fail(CommentsNoPrivilege)
	}
	if !validComment(content) {
		return nil, fail(CommentsInvalidContent)
	}
	c := &dom.UserComment{UserID: userID, Content: content, PostTs: s.d.Now()}
	if err := s.d.UserComments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CommentPage is one page of level comments and their authors, keyed by id.
type CommentPage struct {
	Comments []*dom.LevelComment
	Authors  map[int]*dom.User
	Total    int
}

func (s *CommentService) ListLevelComments(ctx context.Context, levelID, page, pageSize int, byLikes bool) (*CommentPage, error) {
	arr, total, err := s.d.LevelComments.ListForLevel(ctx, levelID, page, pageSize, byLikes)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, arr, total)
}

// ListHistory lists a user's level comments, honouring their comment privacy.
func (s *CommentService) ListHistory(ctx context.Context, requesterID, userID, page, pageSize int, byLikes bool) (*CommentPage, error) {
	target, err := s.d.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requesterID != userID {
		switch target.CommentPrivacy {
		case dom.PrivacyPrivate:
			return nil, fail(UserPrivate)
		case dom.PrivacyFriends:
			ok, err := s.d.friends(ctx, userID, requesterID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fail(UserPrivate)
			}
		}
	}
	arr, total, err := s.d.LevelComments.ListForUser(ctx, userID, page, pageSize, byLikes)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, arr, total)
}

func (s *CommentService) withAuthors(ctx context.Context, arr []*dom.LevelComment, total int64) (*CommentPage, error) {
	var ids []int
	seen := map[int]bool{}
	for _, c := range arr {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			ids = append(ids, c.UserID)
		}
	}
	users, err := s.d.Users.FromIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	authors := make(map[int]*dom.User, len(users))
	for _, u := range users {
		authors[u.ID] = u
	}
	return &CommentPage{Comments: arr, Authors: authors, Total: int(total)}, nil
}

func (s *CommentService) ListUserComments(ctx context.Context, userID, page, pageSize int) ([]*dom.UserComment, int, error) {
	if _, err := s.d.user(ctx, userID); err != nil {
		return nil, 0, err
	}
	arr, total, err := s.d.UserComments.ListForUser(ctx, userID, page, pageSize)
	return arr, int(total), err
}

// canDelete applies the own/other delete privileges. owner reports whether
// the caller owns the comment or the thing it was posted on.
func canDelete(u *dom.User, owner bool) bool {
	if u.Privileges.Has(privilege.CommentsDeleteOther) {
		return true
	}
	return owner && u.Privileges.Has(privilege.CommentsDeleteOwn)
}

// DeleteLevelComment removes a comment; the level's author may also remove
// comments left on it.
func (s *CommentService) DeleteLevelComment(ctx context.Context, userID, commentID int) error {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return err
	}
	c, err := s.d.LevelComments.FromID(ctx, commentID)
	if err != nil {
		return orKind(err, CommentsNotFound)
	}
	owner := c.UserID == userID
	if !owner {
		if l, err := s.d.Levels.FromID(ctx, c.LevelID); err == nil {
			owner = l.UserID == userID
		} else if !errors.Is(err, dom.ErrNotFound) {
			return err
		}
	}
	if !canDelete(u, owner) {
		return fail(CommentsInvalidOwner)
	}
	return s.d.LevelComments.Delete(ctx, commentID)
}

func (s *CommentService) DeleteUserComment(ctx context.Context, userID, commentID int) error {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return err
	}
	c, err := s.d.UserComments.FromID(ctx, commentID)
	if err != nil {
		return orKind(err, CommentsNotFound)
	}
	if !canDelete(u, c.UserID == userID) {
		return fail(CommentsInvalidOwner)
	}
	return s.d.UserComments.Delete(ctx, commentID)
}
