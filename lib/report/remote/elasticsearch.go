package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v7"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/validate"
)

type ElasticsearchConfig struct {
	Host  string
	Port  int
	Index string
}

func NewElasticsearchClient(conf ElasticsearchConfig) (Client, error) {
	c, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{fmt.Sprintf("http://%s:%d", conf.Host, conf.Port)},
	})
	if err != nil {
		return nil, err
	}
	return &esClient{
		Client: c,
		index:  conf.Index,
	}, nil
}

type esClient struct {
	*elasticsearch.Client
	index string
}

func (e *esClient) Ready() bool {
	res, err := e.Info()
	if err != nil || res.StatusCode != 200 {
		return false
	}
	return true
}

type esSplitReport struct {
	Dataset string `json:"dataset"`
	validate.SplitReport
}

// Push bulk-indexes one document per split so dashboards can aggregate
// over splits directly.
func (e *esClient) Push(dataset string, report *validate.Report) error {
	buf := bytes.NewBuffer(nil)
	for _, split := range report.Splits {
		doc, err := json.Marshal(esSplitReport{Dataset: dataset, SplitReport: split})
		if err != nil {
			return err
		}
		buf.WriteString(fmt.Sprintf(`{"index":{}}%s`, "\n"))
		buf.Write(doc)
		buf.WriteString("\n")
	}

	res, err := e.Bulk(buf, e.Bulk.WithIndex(e.index))
	if err != nil {
		return err
	} else if res.StatusCode != 200 {
		return errors.New(res.String())
	}
	return nil
}
