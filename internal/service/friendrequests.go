package service

import (
	"context"
	"errors"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

type FriendRequestService struct{ d *Deps }

// Send opens a request from senderID to recipientID.
func (s *FriendRequestService) Send(ctx context.Context, senderID, recipientID int, message string) (*dom.FriendRequest, error) {
	if senderID == recipientID {
		return nil, fail(FriendRequestInvalidTargetID)
	}
	sender, err := s.d.user(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if !sender.Privileges.Has(privilege.FriendRequestsSend) {
		return nil, fail(FriendRequestNoPrivilege)
	}
	if len(message) > TextMaxBytes {
		return nil, fail(FriendRequestInvalidContent)
	}
	recipient, err := s.d.Users.FromID(ctx, recipientID)
	if err != nil {
		return nil, orKind(err, FriendRequestInvalidTargetID)
	}
	if recipient.FriendPrivacy != dom.PrivacyPublic {
		return nil, fail(FriendRequestDisabled)
	}
	if blocked, err := s.d.blocked(ctx, senderID, recipientID); err != nil {
		return nil, err
	} else if blocked {
		return nil, fail(UserBlocked)
	}
	if ok, err := s.d.friends(ctx, senderID, recipientID); err != nil {
		return nil, err
	} else if ok {
		return nil, fail(RelationshipExists)
	}
	if _, err := s.d.FriendRequests.Between(ctx, senderID, recipientID); err == nil {
		return nil, fail(FriendRequestExists)
	} else if !errors.Is(err, dom.ErrNotFound) {
		return nil, err
	}

	fr := &dom.FriendRequest{
		SenderUserID:    senderID,
		RecipientUserID: recipientID,
		Message:         message,
		PostTs:          s.d.Now(),
	}
	if err := s.d.FriendRequests.Create(ctx, fr); err != nil {
		return nil, err
	}
	return fr, nil
}

// RequestPage is one page of requests with the user on the other side of each.
type RequestPage struct {
	Requests     []*dom.FriendRequest
	Counterparts map[int]*dom.User
	Total        int
}

// List returns the requests userID received, or sent when sent is set.
func (s *FriendRequestService) List(ctx context.Context, userID int, sent bool, page, pageSize int) (*RequestPage, error) {
	list := s.d.FriendRequests.ListReceived
	if sent {
		list = s.d.FriendRequests.ListSent
	}
	arr, total, err := list(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(arr))
	for _, fr := range arr {
		if sent {
			ids = append(ids, fr.RecipientUserID)
		} else {
			ids = append(ids, fr.SenderUserID)
		}
	}
	users, err := s.d.Users.FromIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*dom.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &RequestPage{Requests: arr, Counterparts: byID, Total: int(total)}, nil
}

// received loads a live request addressed to userID.
func (s *FriendRequestService) received(ctx context.Context, userID, requestID int) (*dom.FriendRequest, error) {
	fr, err := s.d.FriendRequests.FromID(ctx, requestID)
	if err != nil {
		return nil, orKind(err, FriendRequestNotFound)
	}
	if fr.Deleted {
		return nil, fail(FriendRequestNotFound)
	}
	if fr.RecipientUserID != userID {
		return nil, fail(FriendRequestInvalidOwner)
	}
	return fr, nil
}

// MarkSeen stamps a received request as read.
func (s *FriendRequestService) MarkSeen(ctx context.Context, userID, requestID int) error {
	fr, err := s.received(ctx, userID, requestID)
	if err != nil {
		return err
	}
	if fr.SeenTs != nil {
		return nil
	}
	return s.d.FriendRequests.MarkSeen(ctx, fr.ID, s.d.Now())
}

// Accept closes a received request and befriends both users.
func (s *FriendRequestService) Accept(ctx context.Context, userID, requestID int) error {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return err
	}
	if !u.Privileges.Has(privilege.FriendRequestsAccept) {
		return fail(FriendRequestNoPrivilege)
	}
	fr, err := s.received(ctx, userID, requestID)
	if err != nil {
		return err
	}
	return s.d.inTx(ctx, func(ctx context.Context) error {
		if err := s.d.FriendRequests.Delete(ctx, fr.ID); err != nil {
			return err
		}
		now := s.d.Now()
		for _, pair := range [][2]int{{fr.SenderUserID, fr.RecipientUserID}, {fr.RecipientUserID, fr.SenderUserID}} {
			ok, err := s.d.friends(ctx, pair[0], pair[1])
			if err != nil {
				return err
			}
			if ok {
				continue
			}
			err = s.d.Relationships.Create(ctx, &dom.UserRelationship{
				Type:         dom.RelationshipFriend,
				UserID:       pair[0],
				TargetUserID: pair[1],
				PostTs:       now,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete withdraws a request userID sent to otherID, or rejects one otherID
// sent to userID when sent is false.
func (s *FriendRequestService) Delete(ctx context.Context, userID, otherID int, sent bool) error {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return err
	}
	if !u.Privileges.Has(privilege.FriendRequestsDeleteOwn) {
		return fail(FriendRequestNoPrivilege)
	}
	from, to := otherID, userID
	if sent {
		from, to = userID, otherID
	}
	fr, err := s.d.FriendRequests.Between(ctx, from, to)
	if err != nil {
		return orKind(err, FriendRequestNotFound)
	}
	return s.d.FriendRequests.Delete(ctx, fr.ID)
}
