package service

import (
	"context"
	"fmt"
	"strconv"

	dom "github.com/gdps-go/gdps/internal/ports"
)

// LevelData stores level bodies at levels/<id>.
type LevelData struct{ blobs dom.BlobStore }

// SaveData stores account saves at saves/<user id>.
type SaveData struct{ blobs dom.BlobStore }

func levelKey(id int) string { return "levels/" + strconv.Itoa(id) }
func saveKey(id int) string  { return "saves/" + strconv.Itoa(id) }

func (l *LevelData) Get(ctx context.Context, levelID int) (string, error) {
	b, err := l.blobs.Get(ctx, levelKey(levelID))
	if err != nil {
		return "", orKind(err, LevelsDataNotFound)
	}
	return string(b), nil
}

func (l *LevelData) Put(ctx context.Context, levelID int, data string) error {
	return l.blobs.PutBytes(ctx, levelKey(levelID), []byte(data))
}

func (l *LevelData) Delete(ctx context.Context, levelID int) error {
	return l.blobs.Delete(ctx, levelKey(levelID))
}

func (s *SaveData) Get(ctx context.Context, userID int) (string, error) {
	b, err := s.blobs.Get(ctx, saveKey(userID))
	if err != nil {
		return "", orKind(err, SaveDataNotFound)
	}
	return string(b), nil
}

// Put stores a save, stamping the versions that produced it.
func (s *SaveData) Put(ctx context.Context, userID int, data string, gameVersion, binaryVersion int) error {
	body := fmt.Sprintf("%s;%d;%d;a;a", data, gameVersion, binaryVersion)
	return s.blobs.PutBytes(ctx, saveKey(userID), []byte(body))
}
