package consumer

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"followup-srv/config"
	"followup-srv/pkg/encrypter"
	"followup-srv/pkg/log"
)

func TestNew_Validation(t *testing.T) {
	enc, err := encrypter.New("consumer-test-key")
	require.NoError(t, err)
	db := &sqlx.DB{}
	kafka := config.KafkaConfig{Brokers: []string{"localhost:9092"}}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "missing logger", cfg: Config{KafkaConfig: kafka, PostgresDB: db, Encrypter: enc}, wantErr: "logger"},
		{name: "missing brokers", cfg: Config{Logger: log.NewNop(), PostgresDB: db, Encrypter: enc}, wantErr: "brokers"},
		{name: "missing postgres", cfg: Config{Logger: log.NewNop(), KafkaConfig: kafka, Encrypter: enc}, wantErr: "postgres"},
		{name: "missing encrypter", cfg: Config{Logger: log.NewNop(), KafkaConfig: kafka, PostgresDB: db}, wantErr: "encrypter"},
		{name: "producer and discord are optional", cfg: Config{Logger: log.NewNop(), KafkaConfig: kafka, PostgresDB: db, Encrypter: enc}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, err := New(tc.cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, srv)
		})
	}
}
