//go:build integration

package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := fmt.Sprintf("masonry_test_%d", time.Now().UnixNano())
	s, err := OpenMongo(ctx, uri, db)
	require.NoError(t, err)
	defer func() {
		_ = s.client.Database(db).Drop(context.Background())
		s.Close()
	}()

	testStore(t, s)
}
