package stores

import (
	"context"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/models/aigc"
	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/settings"
)

// storeTimeout bounds every primary-store round trip; the source of this
// design left durable writes unbounded, which is not acceptable here.
const storeTimeout = time.Second * 5

// Conversation owns the durable turn history of one session. The caller
// guarantees single-writer access per session id; history is append-only,
// with no TTL and no trimming.
type Conversation interface {
	GetID() string
	AddTurn(ctx context.Context, turn aigc.Turn) error
	ListTurns(ctx context.Context) (aigc.Turns, error)
	ClearTurns(ctx context.Context) error
}

// NewConversation binds a session id to its primary list and shadow mirror.
func NewConversation(id string, rc RedisClient, shadow KeyValue) Conversation {
	return &conversation{id: id, rc: rc, shadow: shadow}
}

type conversation struct {
	id     string
	rc     RedisClient
	shadow KeyValue
}

func (s *conversation) GetID() string {
	return s.id
}

func (s *conversation) AddTurn(ctx context.Context, turn aigc.Turn) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	b, err := turn.MarshalBinary()
	if err != nil {
		return err
	}
	if err = s.rc.RPush(ctx, s.getKey(), b).Err(); err != nil {
		logger().Infow("add turn fail", "key", s.getKey(), "err", err)
		return err
	}
	logger().Debugw("add turn ok", "id", s.id, "role", turn.Role)
	s.mirror(ctx)
	return nil
}

func (s *conversation) ListTurns(ctx context.Context) (data aigc.Turns, err error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	ss := s.rc.LRange(ctx, s.getKey(), 0, -1)
	err = ss.ScanSlice(&data)
	return
}

func (s *conversation) ClearTurns(ctx context.Context) error {
	return s.rc.Del(ctx, s.getKey()).Err()
}

// mirror snapshots the full history into the shadow store. Best effort:
// the mirror is never read back and a failed write must not fail the chat.
func (s *conversation) mirror(ctx context.Context) {
	data, err := s.ListTurns(ctx)
	if err == nil {
		var b []byte
		if b, err = data.MarshalBinary(); err == nil {
			err = s.shadow.Put(ctx, "session:"+s.id+":history", b)
		}
	}
	if err != nil {
		logger().Infow("mirror history fail", "id", s.id, "err", err)
	}
}

func (s *conversation) getKey() string {
	return "chat-sess:" + s.id + ":history"
}

func LoadPreset() (doc aigc.Preset, err error) {
	if len(settings.Current.PresetFile) > 0 {
		var yf *os.File
		yf, err = os.Open(settings.Current.PresetFile)
		if err != nil {
			logger().Infow("load preset fail", "file", settings.Current.PresetFile, "err", err)
			return
		}
		defer yf.Close()
		err = yaml.NewDecoder(yf).Decode(&doc)
		if err != nil {
			logger().Infow("decode preset fail", "err", err)
			return
		}
	}

	return
}
