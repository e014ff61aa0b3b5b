package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-pokedex/internal/models"
	"github.com/pribylovaa/go-pokedex/internal/pkg/log"
	"github.com/pribylovaa/go-pokedex/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// duplicateKeyCode - код ошибки MongoDB при нарушении уникального индекса.
const duplicateKeyCode = 11000

// pokemonDoc - представление записи в коллекции.
type pokemonDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	No        int                `bson:"no"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d pokemonDoc) toModel() models.Pokemon {
	return models.Pokemon{
		ID:        d.ID.Hex(),
		No:        d.No,
		Name:      d.Name,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// CreatePokemon вставляет запись; ID генерирует драйвер.
func (m *Mongo) CreatePokemon(ctx context.Context, p models.Pokemon) (*models.Pokemon, error) {
	const op = "storage/mongo/CreatePokemon"

	now := toMS(time.Now())
	doc := pokemonDoc{
		No:        p.No,
		Name:      p.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := m.pokemon.InsertOne(ctx, doc)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, &storage.DuplicateKeyError{No: p.No, Name: p.Name})
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	doc.ID = oid
	out := doc.toModel()

	return &out, nil
}

// PokemonByNo возвращает запись по номеру.
func (m *Mongo) PokemonByNo(ctx context.Context, no int) (*models.Pokemon, error) {
	return m.findOne(ctx, "storage/mongo/PokemonByNo", bson.D{{Key: "no", Value: no}})
}

// PokemonByID возвращает запись по идентификатору.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) PokemonByID(ctx context.Context, id string) (*models.Pokemon, error) {
	const op = "storage/mongo/PokemonByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return m.findOne(ctx, op, bson.D{{Key: "_id", Value: oid}})
}

// PokemonByName возвращает запись по точному имени.
func (m *Mongo) PokemonByName(ctx context.Context, name string) (*models.Pokemon, error) {
	return m.findOne(ctx, "storage/mongo/PokemonByName", bson.D{{Key: "name", Value: name}})
}

func (m *Mongo) findOne(ctx context.Context, op string, filter bson.D) (*models.Pokemon, error) {
	var doc pokemonDoc
	if err := m.pokemon.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()

	return &out, nil
}

// UpdatePokemon выставляет переданные поля патча ($set) и updated_at.
func (m *Mongo) UpdatePokemon(ctx context.Context, id string, patch models.PokemonPatch) error {
	const op = "storage/mongo/UpdatePokemon"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	set := bson.D{{Key: "updated_at", Value: toMS(time.Now())}}
	dup := &storage.DuplicateKeyError{}

	if patch.No != nil {
		set = append(set, bson.E{Key: "no", Value: *patch.No})
		dup.No = *patch.No
	}

	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
		dup.Name = *patch.Name
	}

	res, err := m.pokemon.UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, dup)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeletePokemon удаляет запись и возвращает её последнее состояние.
func (m *Mongo) DeletePokemon(ctx context.Context, id string) (*models.Pokemon, error) {
	const op = "storage/mongo/DeletePokemon"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc pokemonDoc
	if err := m.pokemon.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()

	return &out, nil
}

// ListPokemon возвращает срез каталога без явной сортировки (natural order).
func (m *Mongo) ListPokemon(ctx context.Context, p models.ListParams) ([]models.Pokemon, error) {
	const op = "storage/mongo/ListPokemon"

	findOpts := options.Find().
		SetSkip(int64(p.Offset)).
		SetLimit(int64(p.Limit))

	cur, err := m.pokemon.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	items := make([]models.Pokemon, 0, max(p.Limit, 0))
	for cur.Next(ctx) {
		var doc pokemonDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, doc.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}

// ReplaceAll заменяет каталог новым поколением.
//
// Алгоритм:
//  1. создаётся staging-коллекция pokemon_gen_<uuid> с теми же уникальными индексами;
//  2. drafts вставляются в неё одним упорядоченным InsertMany;
//  3. renameCollection(dropTarget=true) атомарно подменяет живую коллекцию,
//     старое поколение удаляется сервером.
//
// При ошибке на шагах 1–3 staging-коллекция удаляется, живой каталог не меняется,
// поэтому читатели никогда не видят пустой промежуточный каталог.
func (m *Mongo) ReplaceAll(ctx context.Context, drafts []models.Pokemon) (int, error) {
	const op = "storage/mongo/ReplaceAll"

	staging := m.db.Collection(generationPrefix + strings.ReplaceAll(uuid.NewString(), "-", ""))
	lg := log.From(ctx).With("op", op, "staging", staging.Name())

	dropStaging := func() {
		if err := staging.Drop(context.WithoutCancel(ctx)); err != nil {
			lg.Warn("staging_drop_failed", "err", err)
		}
	}

	if err := ensureIndexes(ctx, staging); err != nil {
		dropStaging()
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if len(drafts) > 0 {
		now := toMS(time.Now())
		docs := make([]any, 0, len(drafts))
		for _, d := range drafts {
			docs = append(docs, pokemonDoc{No: d.No, Name: d.Name, CreatedAt: now, UpdatedAt: now})
		}

		if _, err := staging.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
			dropStaging()

			if mongodriver.IsDuplicateKeyError(err) {
				return 0, fmt.Errorf("%s: %w", op, duplicateFromBulk(err, drafts))
			}

			return 0, fmt.Errorf("%s: insert: %w", op, err)
		}
	}
	lg.Debug("generation_staged", "records", len(drafts))

	cmd := bson.D{
		{Key: "renameCollection", Value: m.db.Name() + "." + staging.Name()},
		{Key: "to", Value: m.db.Name() + "." + pokemonCollection},
		{Key: "dropTarget", Value: true},
	}
	if err := m.client.Database("admin").RunCommand(ctx, cmd).Err(); err != nil {
		dropStaging()
		return 0, fmt.Errorf("%s: swap generation: %w", op, err)
	}
	lg.Debug("generation_swapped")

	return len(drafts), nil
}

// duplicateFromBulk находит в BulkWriteException первый конфликт уникальности
// и возвращает ключ соответствующего черновика.
func duplicateFromBulk(err error, drafts []models.Pokemon) *storage.DuplicateKeyError {
	var bwe mongodriver.BulkWriteException
	if errors.As(err, &bwe) {
		for _, we := range bwe.WriteErrors {
			if we.Code == duplicateKeyCode && we.Index >= 0 && we.Index < len(drafts) {
				d := drafts[we.Index]
				return &storage.DuplicateKeyError{No: d.No, Name: d.Name}
			}
		}
	}

	return &storage.DuplicateKeyError{}
}
