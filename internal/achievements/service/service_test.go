package service

import (
	"context"
	"testing"

	"github.com/folio-site/folio/backend/internal/achievements/repository"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestCreateRequiresYearAndItems(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Items: []string{"a"}})
	require.ErrorIs(t, err, apierror.ErrValidation)
	require.Equal(t, "year is required", err.Error())

	_, err = svc.Create(ctx, Input{Year: intp(2024)})
	require.ErrorIs(t, err, apierror.ErrValidation)
	require.Equal(t, "items is required", err.Error())

	// an empty list is accepted as-is
	a, err := svc.Create(ctx, Input{Year: intp(2024), Items: []string{}})
	require.NoError(t, err)
	require.Empty(t, a.Items)
}

func TestUpdateIsFullReplace(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	ctx := context.Background()
	markup := `Won <a href="https://x">prize</a>`
	a, err := svc.Create(ctx, Input{Year: intp(2022), Items: []string{markup, "b"}})
	require.NoError(t, err)
	require.Equal(t, markup, a.Items[0])

	upd, err := svc.Update(ctx, a.ID, Input{Year: intp(2023), Items: []string{"only"}})
	require.NoError(t, err)
	require.Equal(t, 2023, upd.Year)
	require.Equal(t, []string{"only"}, upd.Items)

	_, err = svc.Update(ctx, "nope", Input{Year: intp(1), Items: []string{}})
	require.ErrorIs(t, err, apierror.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, a.ID))
	_, err = svc.Get(ctx, a.ID)
	require.ErrorIs(t, err, apierror.ErrNotFound)
}
