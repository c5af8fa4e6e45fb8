package main

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loantracker-backend/docs"
)

// swaggerPath turns /api/v1/history/:record_id into /history/{record_id}.
func swaggerPath(ginPath string) string {
	segs := strings.Split(strings.TrimPrefix(ginPath, "/api/v1"), "/")
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			segs[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}

func Test_SwaggerDocMatchesRoutes(t *testing.T) {
	// arrange
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mountAPI(r, nil, []byte("secret"), time.Hour)

	var doc struct {
		Paths map[string]map[string]jsoniter.RawMessage `json:"paths"`
	}
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(docs.SwaggerInfo.ReadDoc(), &doc))

	// act
	var routes, documented []string
	for _, rt := range r.Routes() {
		routes = append(routes, strings.ToLower(rt.Method)+" "+swaggerPath(rt.Path))
	}
	for p, ops := range doc.Paths {
		for m := range ops {
			documented = append(documented, m+" "+p)
		}
	}
	sort.Strings(routes)
	sort.Strings(documented)

	// assert
	assert.Equal(t, routes, documented)
}

func Test_swaggerPath(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "/api/v1/history", want: "/history"},
		{name: "param", in: "/api/v1/history/:record_id/return", want: "/history/{record_id}/return"},
		{name: "admin", in: "/api/v1/admin/favorites/:list_id", want: "/admin/favorites/{list_id}"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, swaggerPath(tc.in))
		})
	}
}
