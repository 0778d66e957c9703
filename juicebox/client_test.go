// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package juicebox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchProjects(t *testing.T) {
	archived := false
	tests := map[string]struct {
		query         SearchQuery
		expectedQuery string
	}{
		"by text": {
			query:         SearchQuery{Text: "dao", PageSize: 5},
			expectedQuery: "pageSize=5&text=dao",
		},
		"by project id": {
			query:         SearchQuery{ProjectID: 1, PV: "2", Archived: &archived},
			expectedQuery: "archived=false&projectId=1&pv=2",
		},
		"ordered": {
			query:         SearchQuery{OrderBy: "total_paid", OrderDirection: "desc"},
			expectedQuery: "orderBy=total_paid&orderDirection=desc",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(projectsPath, r.URL.Path)
				require.Equal(tt.expectedQuery, r.URL.RawQuery)
				_, _ = w.Write([]byte(`[
					{"id":"2-1","handle":"juicebox","project_id":1,"pv":"2","name":"JuiceboxDAO","payments_count":120,"archived":null},
					{"id":"2-477","handle":null,"project_id":477,"pv":"2","name":"Nance"}
				]`))
			}))
			defer server.Close()

			projects, err := NewClient(server.URL).SearchProjects(context.Background(), tt.query)
			require.NoError(err)
			require.Len(projects, 2)
			require.Equal(uint64(1), projects[0].ProjectID)
			require.Equal("@juicebox", projects[0].DisplayName())
			require.Equal("Nance", projects[1].DisplayName())
			require.Nil(projects[1].Handle)
		})
	}
}
