package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/meilisearch/meilisearch-go"

	dom "github.com/gdps-go/gdps/internal/ports"
)

// Meili stores documents in two Meilisearch indexes.
type Meili struct {
	client *meilisearch.Client
	users  *meilisearch.Index
	levels *meilisearch.Index
}

var _ Index = (*Meili)(nil)

var (
	userFilterable  = []string{"id", "is_public"}
	userSortable    = []string{"stars", "id"}
	userSearchable  = []string{"username"}
	levelFilterable = []string{
		"id", "user_id", "custom_song_id", "official_song_id", "length", "two_player",
		"publicity", "original_id", "stars", "difficulty", "demon_difficulty", "coins",
		"coins_verified", "requested_stars", "feature_order", "epic", "magic", "awarded", "upload_ts",
	}
	levelSortable   = []string{"id", "downloads", "likes", "feature_order", "upload_ts"}
	levelSearchable = []string{"name", "description"}
)

func NewMeili(c Config) (*Meili, error) {
	if c.Host == "" {
		return nil, fmt.Errorf("meili: host required")
	}
	client := meilisearch.NewClient(meilisearch.ClientConfig{Host: c.Host, APIKey: c.APIKey})
	usersName, levelsName := c.UsersIndex, c.LevelIndex
	if usersName == "" {
		usersName = "users"
	}
	if levelsName == "" {
		levelsName = "levels"
	}
	return &Meili{
		client: client,
		users:  client.Index(usersName),
		levels: client.Index(levelsName),
	}, nil
}

// EnsureSettings declares the filterable, sortable and searchable attributes
// both indexes rely on. It is idempotent.
func (m *Meili) EnsureSettings() error {
	steps := []func() error{
		func() error { _, err := m.users.UpdateFilterableAttributes(&userFilterable); return err },
		func() error { _, err := m.users.UpdateSortableAttributes(&userSortable); return err },
		func() error { _, err := m.users.UpdateSearchableAttributes(&userSearchable); return err },
		func() error { _, err := m.levels.UpdateFilterableAttributes(&levelFilterable); return err },
		func() error { _, err := m.levels.UpdateSortableAttributes(&levelSortable); return err },
		func() error { _, err := m.levels.UpdateSearchableAttributes(&levelSearchable); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("meili settings: %w", err)
		}
	}
	return nil
}

func (m *Meili) UpsertUsers(_ context.Context, users ...*dom.User) error {
	if len(users) == 0 {
		return nil
	}
	docs := make([]UserDocument, len(users))
	for i, u := range users {
		docs[i] = NewUserDocument(u)
	}
	if _, err := m.users.AddDocuments(docs, "id"); err != nil {
		return fmt.Errorf("meili add users: %w", err)
	}
	return nil
}

func (m *Meili) SearchUsers(_ context.Context, q dom.UserSearchQuery) (dom.SearchResult, error) {
	offset, limit := pageBounds(q.Page, q.PageSize)
	req := &meilisearch.SearchRequest{
		Offset: int64(offset),
		Limit:  int64(limit),
		Sort:   []string{"stars:desc"},
	}
	if !q.IncludePrivate {
		req.Filter = "is_public = true"
	}
	resp, err := m.users.Search(q.Query, req)
	if err != nil {
		return dom.SearchResult{}, fmt.Errorf("meili search users: %w", err)
	}
	return toResult(resp)
}

func (m *Meili) UpsertLevels(ctx context.Context, levels ...*dom.Level) error {
	docs := make([]LevelDocument, 0, len(levels))
	for _, l := range levels {
		if l.Deleted {
			if err := m.DeleteLevel(ctx, l.ID); err != nil {
				return err
			}
			continue
		}
		docs = append(docs, NewLevelDocument(l))
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := m.levels.AddDocuments(docs, "id"); err != nil {
		return fmt.Errorf("meili add levels: %w", err)
	}
	return nil
}

func (m *Meili) DeleteLevel(_ context.Context, id int) error {
	if _, err := m.levels.DeleteDocument(strconv.Itoa(id)); err != nil {
		return fmt.Errorf("meili delete level %d: %w", id, err)
	}
	return nil
}

func (m *Meili) SearchLevels(_ context.Context, q dom.LevelSearchQuery) (dom.SearchResult, error) {
	offset, limit := pageBounds(q.Page, q.PageSize)
	req := &meilisearch.SearchRequest{
		Offset: int64(offset),
		Limit:  int64(limit),
		Filter: levelFilter(q),
	}
	for _, k := range levelOrder(q.Type) {
		dir := "asc"
		if k.desc {
			dir = "desc"
		}
		req.Sort = append(req.Sort, k.field+":"+dir)
	}
	text := ""
	if q.Type == dom.SearchQuery {
		text = q.Query
	}
	resp, err := m.levels.Search(text, req)
	if err != nil {
		return dom.SearchResult{}, fmt.Errorf("meili search levels: %w", err)
	}
	return toResult(resp)
}

func toResult(resp *meilisearch.SearchResponse) (dom.SearchResult, error) {
	res := dom.SearchResult{Total: int(resp.EstimatedTotalHits)}
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			return dom.SearchResult{}, err
		}
		var doc struct {
			ID int `json:"id"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return dom.SearchResult{}, err
		}
		res.IDs = append(res.IDs, doc.ID)
	}
	return res, nil
}

func intList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// levelFilter renders the same restrictions as matchLevel in the engine's
// filter syntax.
func levelFilter(q dom.LevelSearchQuery) string {
	var conds []string
	add := func(format string, args ...any) { conds = append(conds, fmt.Sprintf(format, args...)) }

	vis := []string{fmt.Sprintf("publicity = %d", dom.PublicityPublic)}
	var holders []int
	if q.RequesterID != 0 {
		holders = append(holders, q.RequesterID)
	}
	holders = append(holders, q.FriendIDs...)
	if len(holders) > 0 {
		vis = append(vis, fmt.Sprintf("(publicity = %d AND user_id IN %s)", dom.PublicityFriendsSearchable, intList(holders)))
	}
	if q.Type == dom.SearchUserLevels && q.RequesterID != 0 {
		vis = append(vis, fmt.Sprintf("user_id = %d", q.RequesterID))
	}
	add("(%s)", strings.Join(vis, " OR "))

	if len(q.Lengths) > 0 {
		ls := make([]int, len(q.Lengths))
		for i, l := range q.Lengths {
			ls[i] = int(l)
		}
		add("length IN %s", intList(ls))
	}
	if len(q.Difficulties) > 0 {
		ds := make([]int, len(q.Difficulties))
		for i, d := range q.Difficulties {
			ds[i] = int(d)
		}
		add("difficulty IN %s", intList(ds))
	}
	if q.Demon != nil {
		add("demon_difficulty = %d", int(*q.Demon))
	}
	if len(q.Completed) > 0 {
		if q.Uncompleted {
			add("id NOT IN %s", intList(q.Completed))
		}
		if q.OnlyComplete {
			add("id IN %s", intList(q.Completed))
		}
	} else if q.OnlyComplete {
		add("id = -1")
	}
	if q.SongID > 0 {
		if q.CustomSong {
			add("custom_song_id = %d", q.SongID)
		} else {
			add("custom_song_id = 0 AND official_song_id = %d", q.SongID)
		}
	}
	if q.Featured {
		add("feature_order > 0")
	}
	if q.Original {
		add("original_id = 0")
	}
	if q.TwoPlayer {
		add("two_player = true")
	}
	if q.Rated {
		add("stars > 0")
	}
	if q.Unrated {
		add("stars = 0")
	}
	if q.Epic {
		add("epic = true")
	}
	if q.Coins {
		add("coins > 0 AND coins_verified = true")
	}

	switch q.Type {
	case dom.SearchTrending:
		add("upload_ts >= %d", now(q).Add(-trendingWindow).Unix())
	case dom.SearchUserLevels:
		add("user_id = %d", q.AuthorID)
	case dom.SearchFeatured:
		add("feature_order > 0")
	case dom.SearchMagic:
		add("magic = true")
	case dom.SearchModerator:
		add("stars = 0 AND requested_stars > 0")
	case dom.SearchList:
		add("id IN %s", intList(q.ListIDs))
	case dom.SearchAwarded:
		add("(stars > 0 OR awarded = true)")
	case dom.SearchFollowed:
		add("user_id IN %s", intList(q.Followed))
	case dom.SearchFriends:
		add("user_id IN %s", intList(q.FriendIDs))
	case dom.SearchEpic:
		add("epic = true")
	}
	return strings.Join(conds, " AND ")
}
