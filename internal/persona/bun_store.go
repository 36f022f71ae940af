package persona

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/aisimcore/simcore/internal/domain/simerr"
)

// profileModel is the bun row model for a Profile: a flat table with a
// jsonb payload column for the parts of the domain type bun has no
// direct column mapping for.
type profileModel struct {
	bun.BaseModel `bun:"table:companion_profiles,alias:cp"`

	ID        string `bun:"id,pk"`
	Version   string `bun:"version"`
	Signature string `bun:"signature"`
	Payload   []byte `bun:"payload,type:jsonb"`
}

func newProfileModel(p *Profile) (*profileModel, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return &profileModel{ID: p.ID, Version: p.Version, Signature: p.Signature, Payload: payload}, nil
}

func (m *profileModel) toDomain() (*Profile, error) {
	var p Profile
	if err := json.Unmarshal(m.Payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// BunStore is the Postgres-backed Store, built on github.com/uptrace/bun
// over github.com/uptrace/bun/driver/pgdriver.
type BunStore struct {
	db *bun.DB
}

// NewBunStore opens a Postgres connection via dsn through bun's
// pgdriver, mirroring storage.NewBunStore.
func NewBunStore(dsn string) *BunStore {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &BunStore{db: db}
}

// InitSchema creates the companion_profiles table if it does not
// already exist.
func (s *BunStore) InitSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*profileModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Save implements Store via an upsert on ID.
func (s *BunStore) Save(ctx context.Context, p *Profile) error {
	model, err := newProfileModel(p)
	if err != nil {
		return err
	}
	_, err = s.db.NewInsert().Model(model).On("CONFLICT (id) DO UPDATE").Exec(ctx)
	return err
}

// Get implements Store.
func (s *BunStore) Get(ctx context.Context, id string) (*Profile, error) {
	model := new(profileModel)
	err := s.db.NewSelect().Model(model).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, simerr.Wrap(simerr.CodeNotFound, "profile not found: "+id, err)
	}
	return model.toDomain()
}

// List implements Store.
func (s *BunStore) List(ctx context.Context) ([]*Profile, error) {
	var models []profileModel
	if err := s.db.NewSelect().Model(&models).Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]*Profile, 0, len(models))
	for i := range models {
		p, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
