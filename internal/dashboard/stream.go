package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pantry-backend/internal/platform/apierr"
	"pantry-backend/internal/platform/auth"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type StatsSource interface {
	Stats(ctx context.Context) Stats
}

type Message struct {
	Type string `json:"type"`
	Data Stats  `json:"data"`
}

// Streamer は接続中だけ定期的に統計を push する。
// クエリは接続の context に紐づき、切断・セッション失効で止まる。
type Streamer struct {
	stats    StatsSource
	verifier auth.TokenVerifier
	interval time.Duration
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewStreamer(stats StatsSource, verifier auth.TokenVerifier, interval time.Duration, allowOrigins []string, logger *zap.Logger) *Streamer {
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]struct{}, len(allowOrigins))
	for _, o := range allowOrigins {
		allowed[o] = struct{}{}
	}
	return &Streamer{
		stats:    stats,
		verifier: verifier,
		interval: interval,
		logger:   logger.Named("dashboard.ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed[origin]; ok {
					return true
				}
				return origin == "http://"+r.Host || origin == "https://"+r.Host
			},
		},
	}
}

// GET /dashboard/ws?token=
func (s *Streamer) Serve(c *gin.Context) {
	token := auth.TokenFrom(c)
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 側でエラーレスポンスは書かれている
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	s.run(c.Request.Context(), conn, token)
}

func (s *Streamer) run(parent context.Context, conn *websocket.Conn, token string) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// 読み取り側: クライアントからの close / 切断を検知する
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	defer func() {
		conn.Close()
		<-done
	}()

	push := func() error {
		st := s.stats.Stats(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(Message{Type: "stats", Data: st})
	}

	if err := push(); err != nil {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.verifier.Verify(ctx, token); err != nil {
				if apierr.Status(err) != http.StatusUnauthorized {
					// 失効確認自体が失敗: 接続は残してこの回の push だけ見送る
					s.logger.Warn("session re-check failed", zap.Error(err))
					continue
				}
				msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session expired")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
				return
			}
			if err := push(); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
