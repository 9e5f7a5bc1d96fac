package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-reservation/controllers"
	"github.com/yeremiapane/table-reservation/database"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/testutil"
	"github.com/yeremiapane/table-reservation/utils"
)

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := database.NewStore(testutil.OpenDB(t))

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := models.User{Username: "host", Password: hash, Role: "operator"}
	require.NoError(t, store.CreateUser(context.Background(), &user))

	r := gin.New()
	r.POST("/login", controllers.NewUserController(store).Login)
	f := fixture{router: r}

	w, env := f.postJSON(t, "/login", map[string]string{"username": "host", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "operator", data.Role)

	claims, err := utils.ParseToken(data.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "operator", claims.Role)

	w, env = f.postJSON(t, "/login", map[string]string{"username": "host", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", env.Message)

	w, _ = f.postJSON(t, "/login", map[string]string{"username": "ghost", "password": "password123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = f.postJSON(t, "/login", map[string]string{"username": "host"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
