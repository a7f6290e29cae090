package service

import (
	"context"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

type MessageService struct{ d *Deps }

// Send delivers a message, honouring the recipient's message privacy.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID int, subject, content string) (*dom.Message, error) {
	if senderID == recipientID {
		return nil, fail(MessagesInvalidRecipient)
	}
	sender, err := s.d.user(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if !sender.Privileges.Has(privilege.MessagesSend) {
		return nil, fail(MessagesNoPrivilege)
	}
	if subject == "" || len(subject) > TextMaxBytes || content == "" {
		return nil, fail(MessagesInvalidContent)
	}
	recipient, err := s.d.Users.FromID(ctx, recipientID)
	if err != nil {
		return nil, orKind(err, MessagesInvalidRecipient)
	}
	if blocked, err := s.d.blocked(ctx, senderID, recipientID); err != nil {
		return nil, err
	} else if blocked {
		return nil, fail(UserBlocked)
	}
	switch recipient.MessagePrivacy {
	case dom.PrivacyPrivate:
		return nil, fail(MessagesRecipientPrivate)
	case dom.PrivacyFriends:
		ok, err := s.d.friends(ctx, recipientID, senderID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fail(MessagesRecipientPrivate)
		}
	}

	m := &dom.Message{
		SenderUserID:    senderID,
		RecipientUserID: recipientID,
		Subject:         subject,
		Content:         content,
		PostTs:          s.d.Now(),
	}
	if err := s.d.Messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// MessagePage is one page of a mailbox with the user on the other side of each.
type MessagePage struct {
	Messages     []*dom.Message
	Counterparts map[int]*dom.User
	Total        int
}

// List returns userID's inbox, or outbox when sent is set.
func (s *MessageService) List(ctx context.Context, userID int, sent bool, page, pageSize int) (*MessagePage, error) {
	list := s.d.Messages.ListReceived
	if sent {
		list = s.d.Messages.ListSent
	}
	arr, total, err := list(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(arr))
	for _, m := range arr {
		ids = append(ids, counterpart(m, sent))
	}
	users, err := s.d.Users.FromIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*dom.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &MessagePage{Messages: arr, Counterparts: byID, Total: int(total)}, nil
}

func counterpart(m *dom.Message, sent bool) int {
	if sent {
		return m.RecipientUserID
	}
	return m.SenderUserID
}

// Opened is a message read by one of its parties.
type Opened struct {
	Message     *dom.Message
	Counterpart *dom.User
	Sent        bool
}

// Get opens a message. Opening a received message marks it seen.
func (s *MessageService) Get(ctx context.Context, userID, messageID int) (*Opened, error) {
	m, err := s.d.Messages.FromID(ctx, messageID)
	if err != nil {
		return nil, orKind(err, MessagesNotFound)
	}
	var sent bool
	switch {
	case m.SenderUserID == userID && !m.SenderDeleted:
		sent = true
	case m.RecipientUserID == userID && !m.RecipientDeleted:
	default:
		return nil, fail(MessagesNotFound)
	}
	other, err := s.d.user(ctx, counterpart(m, sent))
	if err != nil {
		return nil, err
	}
	if !sent && m.SeenTs == nil {
		now := s.d.Now()
		if err := s.d.Messages.MarkSeen(ctx, m.ID, now); err != nil {
			return nil, err
		}
		m.SeenTs = &now
	}
	return &Opened{Message: m, Counterpart: other, Sent: sent}, nil
}

// Delete hides messages from userID's side of the conversation only.
func (s *MessageService) Delete(ctx context.Context, userID int, ids ...int) error {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return err
	}
	if !u.Privileges.Has(privilege.MessagesDeleteOwn) {
		return fail(MessagesNoPrivilege)
	}
	for _, id := range ids {
		m, err := s.d.Messages.FromID(ctx, id)
		if err != nil {
			return orKind(err, MessagesNotFound)
		}
		switch userID {
		case m.SenderUserID:
			err = s.d.Messages.DeleteForSender(ctx, id)
		case m.RecipientUserID:
			err = s.d.Messages.DeleteForRecipient(ctx, id)
		default:
			err = fail(MessagesInvalidOwner)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
