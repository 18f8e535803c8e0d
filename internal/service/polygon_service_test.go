package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"polygon-service/internal/model"
	"polygon-service/internal/repository"
)

type fakePolygonStore struct {
	polygons map[primitive.ObjectID]*model.Polygon
	order    []primitive.ObjectID
}

func newFakePolygonStore() *fakePolygonStore {
	return &fakePolygonStore{polygons: map[primitive.ObjectID]*model.Polygon{}}
}

func (f *fakePolygonStore) Insert(_ context.Context, polygon *model.Polygon) error {
	if polygon.ID.IsZero() {
		polygon.ID = primitive.NewObjectID()
	}
	stored := *polygon
	f.polygons[polygon.ID] = &stored
	f.order = append(f.order, polygon.ID)
	return nil
}

func (f *fakePolygonStore) FindAll(_ context.Context) ([]model.Polygon, error) {
	out := []model.Polygon{}
	for _, id := range f.order {
		out = append(out, *f.polygons[id])
	}
	return out, nil
}

func (f *fakePolygonStore) FindByField(_ context.Context, field, value string) ([]model.Polygon, error) {
	out := []model.Polygon{}
	for _, id := range f.order {
		p := f.polygons[id]
		switch field {
		case "email":
			if p.Email == value {
				out = append(out, *p)
			}
		case "tag":
			if p.Tag == value {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

func (f *fakePolygonStore) UpdateByID(_ context.Context, id primitive.ObjectID, update repository.PolygonUpdate) (*model.Polygon, error) {
	p, ok := f.polygons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Coordinates != nil {
		p.Coordinates = update.Coordinates
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Color != nil {
		p.Color = *update.Color
	}
	if update.Area != nil {
		p.Area = *update.Area
	}
	if update.Date != nil {
		p.Date = *update.Date
	}
	if update.Reviews != nil {
		p.Reviews = update.Reviews
	}
	if update.Likes != nil {
		p.Likes = *update.Likes
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Email != nil {
		p.Email = *update.Email
	}
	if update.Tag != nil {
		p.Tag = *update.Tag
	}
	copied := *p
	return &copied, nil
}

func (f *fakePolygonStore) IncrementLikes(_ context.Context, id primitive.ObjectID) (*model.Polygon, error) {
	p, ok := f.polygons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Likes++
	copied := *p
	return &copied, nil
}

func (f *fakePolygonStore) AppendReview(_ context.Context, id primitive.ObjectID, review string) (*model.Polygon, error) {
	p, ok := f.polygons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Reviews = append(p.Reviews, review)
	copied := *p
	return &copied, nil
}

func (f *fakePolygonStore) DeleteByID(_ context.Context, id primitive.ObjectID) (*model.Polygon, error) {
	p, ok := f.polygons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(f.polygons, id)
	for i, stored := range f.order {
		if stored == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return p, nil
}

func validCreateInput() CreatePolygonInput {
	return CreatePolygonInput{
		Coordinates: [][][]float64{{{10.1, 20.2}, {11.1, 21.2}, {12.1, 22.2}}},
		Description: "test area",
		Date:        "2025-01-15T10:00:00Z",
	}
}

func TestPolygonCreateAppliesDefaults(t *testing.T) {
	store := newFakePolygonStore()
	svc := NewPolygonService(store)

	polygon, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, model.DefaultPolygonColor, polygon.Color)
	assert.Equal(t, float64(0), polygon.Area)
	assert.Equal(t, int64(0), polygon.Likes)
	assert.Equal(t, []string{}, polygon.Reviews)
	assert.Equal(t, model.DefaultPolygonTag, polygon.Tag)
	assert.False(t, polygon.ID.IsZero())
}

func TestPolygonCreateKeepsProvidedOptionalFields(t *testing.T) {
	store := newFakePolygonStore()
	svc := NewPolygonService(store)

	color := "#00FF00"
	area := 42.5
	tag := "park"
	input := validCreateInput()
	input.Color = &color
	input.Area = &area
	input.Tag = &tag
	input.Name = "alice"
	input.Email = "  Alice@Example.COM "

	polygon, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "#00FF00", polygon.Color)
	assert.Equal(t, 42.5, polygon.Area)
	assert.Equal(t, "park", polygon.Tag)
	assert.Equal(t, "alice", polygon.Name)
	assert.Equal(t, "alice@example.com", polygon.Email)
}

func TestPolygonCreateMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreatePolygonInput)
	}{
		{"missing coordinates", func(in *CreatePolygonInput) { in.Coordinates = nil }},
		{"empty ring", func(in *CreatePolygonInput) { in.Coordinates = [][][]float64{{}} }},
		{"point not a pair", func(in *CreatePolygonInput) { in.Coordinates = [][][]float64{{{1.0}}} }},
		{"missing description", func(in *CreatePolygonInput) { in.Description = "" }},
		{"missing date", func(in *CreatePolygonInput) { in.Date = "" }},
		{"unparseable date", func(in *CreatePolygonInput) { in.Date = "not-a-date" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakePolygonStore()
			svc := NewPolygonService(store)

			input := validCreateInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), input)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, store.polygons, "no record may be persisted on validation failure")
		})
	}
}

func TestPolygonLikeIsAdditive(t *testing.T) {
	store := newFakePolygonStore()
	svc := NewPolygonService(store)

	polygon, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	var likes int64
	for i := 0; i < 5; i++ {
		likes, err = svc.Like(context.Background(), polygon.ID.Hex())
		require.NoError(t, err)
	}
	assert.Equal(t, int64(5), likes)
}

func TestPolygonReviewOrderPreserved(t *testing.T) {
	store := newFakePolygonStore()
	svc := NewPolygonService(store)

	polygon, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = svc.AddReview(context.Background(), polygon.ID.Hex(), "a")
	require.NoError(t, err)
	reviews, err := svc.AddReview(context.Background(), polygon.ID.Hex(), "b")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, reviews)
}

func TestPolygonReviewRequiresContent(t *testing.T) {
	store := newFakePolygonStore()
	svc := NewPolygonService(store)

	polygon, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = svc.AddReview(context.Background(), polygon.ID.Hex(), "   ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPolygonDeleteTwice(t *testing.T) {
	store := newFakePolygonStore()
	svc := NewPolygonService(store)

	polygon, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), polygon.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, polygon.ID, deleted.ID)

	_, err = svc.Delete(context.Background(), polygon.ID.Hex())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPolygonMalformedIDIsClientError(t *testing.T) {
	store := newFakePolygonStore()
	svc := NewPolygonService(store)

	_, err := svc.Like(context.Background(), "not-a-hex-id")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestPolygonListByEmailAndTag(t *testing.T) {
	store := newFakePolygonStore()
	svc := NewPolygonService(store)

	tagged := validCreateInput()
	tag := "lake"
	tagged.Tag = &tag
	tagged.Email = "owner@example.com"
	_, err := svc.Create(context.Background(), tagged)
	require.NoError(t, err)

	other := validCreateInput()
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	byEmail, err := svc.ListByEmail(context.Background(), "owner@example.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "owner@example.com", byEmail[0].Email)

	byTag, err := svc.ListByTag(context.Background(), "lake")
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "lake", byTag[0].Tag)

	_, err = svc.ListByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ListByTag(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPolygonUpdatePartialFields(t *testing.T) {
	store := newFakePolygonStore()
	svc := NewPolygonService(store)

	polygon, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	color := "#123456"
	updated, err := svc.Update(context.Background(), polygon.ID.Hex(), UpdatePolygonInput{Color: &color})
	require.NoError(t, err)

	assert.Equal(t, "#123456", updated.Color)
	assert.Equal(t, polygon.Description, updated.Description, "untouched fields survive a partial update")

	_, err = svc.Update(context.Background(), primitive.NewObjectID().Hex(), UpdatePolygonInput{Color: &color})
	require.ErrorIs(t, err, ErrNotFound)
}
