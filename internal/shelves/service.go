package shelves

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/text/width"

	"pantry-backend/internal/inventory"
	"pantry-backend/internal/platform/apierr"
	"pantry-backend/internal/platform/db"
	"pantry-backend/internal/platform/ident"
	"pantry-backend/internal/platform/logging"
)

const (
	maxSuggestDistance = 2
	maxSuggestions     = 3

	DefaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// ItemLister は棚の上の品目を返す（inventory.Service が満たす）
type ItemLister interface {
	ItemsOnShelf(ctx context.Context, shelfID string) ([]inventory.ItemResponse, error)
}

type Service struct {
	store  ShelfStore
	items  ItemLister
	clock  ident.Clock
	ids    ident.IDGen
	logger *zap.Logger
}

func NewService(conn *sql.DB, items ItemLister, logger *zap.Logger) *Service {
	return NewServiceWithStore(NewStore(conn), items, logger)
}

func NewServiceWithStore(store ShelfStore, items ItemLister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		items:  items,
		clock:  ident.RealClock{},
		ids:    ident.NewULIDGen(),
		logger: logger.Named("shelves"),
	}
}

// NormalizeCode: 前後の空白を落とし、全角英数を半角に寄せる
func NormalizeCode(raw string) string {
	return strings.TrimSpace(width.Fold.String(strings.TrimSpace(raw)))
}

// Scan は QR コードから棚と棚の品目を引く。
// 0件・2件以上はどちらも「見つからない」扱いで、エラーにはしない。
func (s *Service) Scan(ctx context.Context, raw string) (ScanResponse, error) {
	code := NormalizeCode(raw)
	if code == "" {
		return ScanResponse{}, apierr.ErrInvalid("Please enter a QR code")
	}

	found, err := s.store.FindByQRCode(ctx, code)
	if err != nil {
		s.log(ctx).Error("find shelf by qr code", zap.String("qr_code", code), zap.Error(err))
		return ScanResponse{}, apierr.ErrInternal("Failed to look up shelf", err)
	}

	if len(found) != 1 {
		if len(found) > 1 {
			s.log(ctx).Warn("qr code matches more than one shelf", zap.String("qr_code", code))
		}
		return ScanResponse{
			Found:      false,
			Items:      []inventory.ItemResponse{},
			Message:    "Shelf not found",
			DidYouMean: s.suggest(ctx, code),
		}, nil
	}

	shelf := found[0].ToDTO()
	items, err := s.items.ItemsOnShelf(ctx, shelf.ID)
	if err != nil {
		return ScanResponse{}, err
	}
	return ScanResponse{Found: true, Shelf: &shelf, Items: items, Message: "Shelf loaded!"}, nil
}

// suggest は編集距離が近い既存コードを最大3件返す。失敗しても空で返す。
func (s *Service) suggest(ctx context.Context, code string) []string {
	codes, err := s.store.ListCodes(ctx)
	if err != nil {
		s.log(ctx).Warn("list qr codes for suggestions", zap.Error(err))
		return nil
	}
	return closestCodes(code, codes)
}

func closestCodes(code string, codes []string) []string {
	type cand struct {
		code string
		dist int
	}
	var cands []cand
	for _, c := range codes {
		if c == code {
			continue
		}
		if d := levenshtein.ComputeDistance(code, c); d <= maxSuggestDistance {
			cands = append(cands, cand{code: c, dist: d})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].code < cands[j].code
	})

	var out []string
	for i := 0; i < len(cands) && i < maxSuggestions; i++ {
		out = append(out, cands[i].code)
	}
	return out
}

func (s *Service) List(ctx context.Context) (ListResponse, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		s.log(ctx).Error("list shelves", zap.Error(err))
		return ListResponse{}, apierr.ErrInternal("Failed to load shelves", err)
	}
	out := make([]ShelfResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToDTO())
	}
	return ListResponse{Shelves: out, Total: len(out)}, nil
}

func (s *Service) Get(ctx context.Context, id string) (ShelfResponse, error) {
	sh, err := s.get(ctx, id)
	if err != nil {
		return ShelfResponse{}, err
	}
	return sh.ToDTO(), nil
}

func (s *Service) get(ctx context.Context, id string) (*Shelf, error) {
	sh, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierr.ErrNotFound("shelf not found")
		}
		s.log(ctx).Error("get shelf", zap.String("id", id), zap.Error(err))
		return nil, apierr.ErrInternal("Failed to load shelf", err)
	}
	return sh, nil
}

func (s *Service) Create(ctx context.Context, in CreateShelfRequest) (ShelfResponse, error) {
	loc := strings.TrimSpace(in.Location)
	code := NormalizeCode(in.QRCode)
	if loc == "" || code == "" {
		return ShelfResponse{}, apierr.ErrInvalid("location and qr_code are required")
	}

	sh := &Shelf{
		ID:        s.ids.New(),
		Location:  loc,
		QRCode:    code,
		CreatedAt: s.clock.Now(),
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		sh.Description = sql.NullString{String: strings.TrimSpace(*in.Description), Valid: true}
	}

	if err := s.store.Insert(ctx, sh); err != nil {
		if db.IsDuplicateKey(err) {
			return ShelfResponse{}, apierr.ErrConflict("qr_code already exists")
		}
		s.log(ctx).Error("insert shelf", zap.Error(err))
		return ShelfResponse{}, apierr.ErrInternal("Failed to add shelf", err)
	}
	return sh.ToDTO(), nil
}

// QRCodePNG は棚の qr_code を PNG にする
func (s *Service) QRCodePNG(ctx context.Context, id string, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultQRSize
	}
	if size < minQRSize || size > maxQRSize {
		return nil, apierr.ErrInvalid("size must be between 64 and 1024")
	}

	sh, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(sh.QRCode, qrcode.Medium, size)
	if err != nil {
		return nil, apierr.ErrInternal("Failed to render QR code", err)
	}
	return png, nil
}

// LabelsCSV: 全棚分のラベル CSV（utf8 / cp932）
func (s *Service) LabelsCSV(ctx context.Context, enc string) ([]byte, error) {
	if enc == "" {
		enc = EncodingUTF8
	}
	if enc != EncodingUTF8 && enc != EncodingCP932 {
		return nil, apierr.ErrInvalid("encoding must be utf8 or cp932")
	}

	rows, err := s.store.List(ctx)
	if err != nil {
		s.log(ctx).Error("list shelves for labels", zap.Error(err))
		return nil, apierr.ErrInternal("Failed to load shelves", err)
	}

	labels := make([]LabelRow, 0, len(rows))
	for _, r := range rows {
		labels = append(labels, LabelRow{Location: r.Location, QRCode: r.QRCode, Description: r.Description.String})
	}

	var b bytes.Buffer
	if err := writeLabelCSV(&b, labels, enc); err != nil {
		return nil, apierr.ErrInternal("Failed to build label csv", err)
	}
	return b.Bytes(), nil
}

func (s *Service) log(ctx context.Context) *zap.Logger { return logging.For(ctx, s.logger) }
