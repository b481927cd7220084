package elastic_client

import (
	"context"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/util"
)

// Client stays nil when no address is configured and every caller treats
// Elasticsearch as optional.
var Client *elasticsearch.Client
var bulkIndexer esutil.BulkIndexer

const flushInterval = 15 * time.Second

func clientConfig(env map[string]string) (elasticsearch.Config, bool) {
	address := env["SUBWAY_ELASTICSEARCH_ADDRESS"]
	if address == "" {
		return elasticsearch.Config{}, false
	}

	return elasticsearch.Config{
		Addresses: []string{address},
		Username:  env["SUBWAY_ELASTICSEARCH_USERNAME"],
		Password:  env["SUBWAY_ELASTICSEARCH_PASSWORD"],
	}, true
}

func Connect() error {
	config, configured := clientConfig(util.GetEnvironmentVariables())
	if !configured {
		log.Info().Msg("Skipping Elasticsearch setup")
		return nil
	}

	es, err := elasticsearch.NewClient(config)
	if err != nil {
		return err
	}
	if _, err := es.Info(); err != nil {
		return err
	}

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        es,
		FlushInterval: flushInterval,
		OnError: func(_ context.Context, err error) {
			log.Error().Err(err).Msg("Bulk indexer failed")
		},
	})
	if err != nil {
		return err
	}

	Client = es
	bulkIndexer = indexer

	log.Info().Strs("addresses", config.Addresses).Msg("Elasticsearch client setup")

	return nil
}

// IndexRequest queues a document on the bulk indexer. It does nothing when
// Elasticsearch has not been configured.
func IndexRequest(indexName string, document io.ReadSeeker) {
	if bulkIndexer == nil {
		return
	}

	err := bulkIndexer.Add(context.Background(), esutil.BulkIndexerItem{
		Index:  indexName,
		Action: "index",
		Body:   document,
		OnFailure: func(_ context.Context, _ esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
			log.Error().Err(err).Str("index", indexName).Str("reason", res.Error.Reason).Msg("Failed to index document")
		},
	})
	if err != nil {
		log.Error().Err(err).Str("index", indexName).Msg("Failed to queue document")
	}
}

// WaitUntilQueueEmpty flushes whatever is still queued.
func WaitUntilQueueEmpty() {
	if bulkIndexer == nil {
		return
	}

	if err := bulkIndexer.Close(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to flush bulk indexer")
	}
}
