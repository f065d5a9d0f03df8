package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/domain"
	apperrors "github.com/ryan-kp-miller/the-drink-almanac-api/pkg/errors"
)

func TestFavoriteAddEndpoint_Success(t *testing.T) {
	f := newFixture(t)

	f.userRepo.On("GetByID", mock.Anything, int64(1)).Return(existingUser(), nil)
	f.favoriteRepo.On("GetByUserAndDrink", mock.Anything, int64(1), int64(11007)).
		Return(nil, apperrors.ErrNotFound)
	f.favoriteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Favorite")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Favorite).ID = 1
		}).
		Return(nil)

	rec := f.do(t, http.MethodPost, "/favorite/11007", "", f.accessToken(t, 1))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, float64(1), body["user_id"])
	assert.Equal(t, float64(11007), body["drink_id"])
}

func TestFavoriteAddEndpoint_Duplicate(t *testing.T) {
	f := newFixture(t)

	f.userRepo.On("GetByID", mock.Anything, int64(1)).Return(existingUser(), nil)
	f.favoriteRepo.On("GetByUserAndDrink", mock.Anything, int64(1), int64(11007)).
		Return(&domain.Favorite{ID: 1, UserID: 1, DrinkID: 11007}, nil)

	rec := f.do(t, http.MethodPost, "/favorite/11007", "", f.accessToken(t, 1))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "user has already favorited this drink", body["message"])
	f.favoriteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFavoriteAddEndpoint_UserGone(t *testing.T) {
	f := newFixture(t)

	f.userRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound)

	rec := f.do(t, http.MethodPost, "/favorite/11007", "", f.accessToken(t, 99))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoriteAddEndpoint_MissingAuthorizationHeader(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/favorite/11007", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["message"], "Missing Authorization Header")
}

func TestFavoriteAddEndpoint_NonIntegerDrinkID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/favorite/margarita", "", f.accessToken(t, 1))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["message"], "integer")
}

func TestFavoriteGetEndpoint_Success(t *testing.T) {
	f := newFixture(t)

	f.favoriteRepo.On("GetByUserAndDrink", mock.Anything, int64(1), int64(11007)).
		Return(&domain.Favorite{ID: 1, UserID: 1, DrinkID: 11007}, nil)

	rec := f.do(t, http.MethodGet, "/favorite/11007", "", f.accessToken(t, 1))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(11007), body["drink_id"])
}

func TestFavoriteGetEndpoint_NotFound(t *testing.T) {
	f := newFixture(t)

	f.favoriteRepo.On("GetByUserAndDrink", mock.Anything, int64(1), int64(11007)).
		Return(nil, apperrors.ErrNotFound)

	rec := f.do(t, http.MethodGet, "/favorite/11007", "", f.accessToken(t, 1))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoriteRemoveEndpoint_Success(t *testing.T) {
	f := newFixture(t)

	f.favoriteRepo.On("Delete", mock.Anything, int64(1), int64(11007)).Return(nil)

	rec := f.do(t, http.MethodDelete, "/favorite/11007", "", f.accessToken(t, 1))

	assert.Equal(t, http.StatusOK, rec.Code)
	f.favoriteRepo.AssertExpectations(t)
}

func TestFavoriteRemoveEndpoint_NotFound(t *testing.T) {
	f := newFixture(t)

	f.favoriteRepo.On("Delete", mock.Anything, int64(1), int64(11007)).
		Return(apperrors.NotFound("user has not favorited drink 11007"))

	rec := f.do(t, http.MethodDelete, "/favorite/11007", "", f.accessToken(t, 1))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
