package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rkap/internal/category"
	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

func TestService_CreateCategory(t *testing.T) {
	type testCase struct {
		name      string
		params    category.CategoryParams
		setupMock func(repo *category.MockRepository)
		wantField string
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: category.CategoryParams{Name: " Operational ", Budget: 5_000_000},
			setupMock: func(repo *category.MockRepository) {
				repo.EXPECT().CreateCategory(gomock.Any(), &category.Category{Name: "Operational", Budget: 5_000_000}).
					Return(nil)
			},
		},
		{
			name:      "Negative Budget",
			params:    category.CategoryParams{Name: "Operational", Budget: -1},
			wantField: "budget",
			wantErr:   true,
		},
		{
			name:      "Missing Name",
			params:    category.CategoryParams{Budget: 10},
			wantField: "name",
			wantErr:   true,
		},
		{
			name:   "Store Error",
			params: category.CategoryParams{Name: "Operational"},
			setupMock: func(repo *category.MockRepository) {
				repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := category.NewService(repo).CreateCategory(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				if tt.wantField != "" {
					var verr *validation.Error
					require.ErrorAs(t, err, &verr)
					assert.Contains(t, verr.Fields, tt.wantField)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Operational", got.Name)
		})
	}
}

func TestService_UpdateCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	svc := category.NewService(repo)

	repo.EXPECT().GetCategory(gomock.Any(), int64(4)).Return(&category.Category{ID: 4, Name: "Old", Budget: 1}, nil)
	repo.EXPECT().UpdateCategory(gomock.Any(), &category.Category{ID: 4, Name: "New", Budget: 900}).Return(nil)

	got, err := svc.UpdateCategory(context.Background(), 4, category.CategoryParams{Name: "New", Budget: 900})
	require.NoError(t, err)
	assert.Equal(t, int64(900), got.Budget)

	repo.EXPECT().GetCategory(gomock.Any(), int64(5)).Return(nil, category.ErrNotFound)

	_, err = svc.UpdateCategory(context.Background(), 5, category.CategoryParams{Name: "New"})
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestService_CreateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	svc := category.NewService(repo)

	_, err := svc.CreateItem(context.Background(), category.ItemParams{Name: "Dell XPS 15"})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "categoryId")

	repo.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(category.ErrNotFound)

	_, err = svc.CreateItem(context.Background(), category.ItemParams{Name: "Dell XPS 15", CategoryID: 99})
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestService_ListItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	svc := category.NewService(repo)

	id := int64(3)
	repo.EXPECT().ListItems(gomock.Any(), &id).Return([]category.Item{{ID: 1, CategoryID: 3}}, nil)

	got, err := svc.ListItems(context.Background(), &id)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
