package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesabel/mobileAppDevTeam25/internal/clock"
	"github.com/tesabel/mobileAppDevTeam25/internal/storage/memstore"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/user"
	"github.com/tesabel/mobileAppDevTeam25/services"
)

func newUserRouter(t *testing.T) (*mux.Router, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	userService := services.NewUserService(store, clock.FixedClock(testToday))
	h := NewUserHandler(userService)

	r := mux.NewRouter()
	r.Use(withUID)
	r.HandleFunc("/user/register", h.Register).Methods("POST")
	r.HandleFunc("/user", h.GetProfile).Methods("GET")
	r.HandleFunc("/user/update-profile", h.UpdateProfile).Methods("PUT")
	r.HandleFunc("/user/delete-account", h.DeleteAccount).Methods("DELETE")
	return r, store
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newUserRouter(t)

	rec := doJSON(t, router, "POST", "/user/register", user.RegisterRequest{Name: "Kim"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, testUID, created.UID)
	assert.Equal(t, "Kim", created.Name)
	assert.Equal(t, testToday, created.LastUpdatedDate)

	rec = doJSON(t, router, "POST", "/user/register", user.RegisterRequest{Name: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProfileEndpoint(t *testing.T) {
	router, _ := newUserRouter(t)

	rec := doJSON(t, router, "GET", "/user", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, "POST", "/user/register", user.RegisterRequest{Name: "Kim"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, "GET", "/user", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var u user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, "Kim", u.Name)
}

func TestUpdateProfileEndpoint(t *testing.T) {
	router, _ := newUserRouter(t)

	rec := doJSON(t, router, "POST", "/user/register", user.RegisterRequest{Name: "Kim"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, "PUT", "/user/update-profile", user.UpdateProfileRequest{Name: "Alex"})
	require.Equal(t, http.StatusOK, rec.Code)

	var u user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, "Alex", u.Name)

	rec = doJSON(t, router, "PUT", "/user/update-profile", user.UpdateProfileRequest{Name: " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	router, _ := newUserRouter(t)

	rec := doJSON(t, router, "POST", "/user/register", user.RegisterRequest{Name: "Kim"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, "DELETE", "/user/delete-account", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "GET", "/user", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
