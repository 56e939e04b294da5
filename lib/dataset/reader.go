package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
)

// Format identifies how a split file lays out its records.
type Format string

const (
	// JSONLinesFormat is one record per line, the shape loaders emit.
	JSONLinesFormat Format = "jsonl"
	// JSONFormat is a single top-level array of records.
	JSONFormat Format = "json"
)

type Reader interface {
	Read(file *os.File) (chan schema.Record, chan error)
}

// Read streams the records of a split file according to its format. The
// error channel yields nil on EOF, mirroring the record stream contract
// used throughout: consume records until the error channel fires.
func Read(kind schema.Kind, format Format, file *os.File) (chan schema.Record, chan error, error) {
	switch format {
	case JSONLinesFormat:
		records, errors := NewJSONLinesReader(kind).Read(file)
		return records, errors, nil
	case JSONFormat:
		records, errors := NewJSONReader(kind).Read(file)
		return records, errors, nil
	default:
		return nil, nil, fmt.Errorf("unsupported split file format %v", format)
	}
}

// ReadWithCallback reads the split file according to its format and executes the onRecord callback for each record.
// The onEOF callback is executed when there are no more records in the file.
func ReadWithCallback(file *os.File, kind schema.Kind, format Format, onRecord func(schema.Record) error, onEOF func() error) error {
	records, errors, err := Read(kind, format, file)
	if err != nil {
		return err
	}

Listen:
	for {
		select {
		case err := <-errors:
			if err != nil {
				return err
			}
			break Listen
		case record := <-records:
			if err := onRecord(record); err != nil {
				go drain(records, errors)
				return err
			}
		}
	}

	if onEOF != nil {
		return onEOF()
	}

	return nil
}

// drain runs the producer to completion so an early consumer exit does not
// leak its goroutine. Producers always finish with one send on the error
// channel.
func drain(records chan schema.Record, errors chan error) {
	for {
		select {
		case <-records:
		case <-errors:
			return
		}
	}
}

// ReadSplit materialises a whole split file in memory, the shape the
// validator consumes.
func ReadSplit(path string, kind schema.Kind, format Format) ([]schema.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []schema.Record
	err = ReadWithCallback(file, kind, format, func(rec schema.Record) error {
		records = append(records, rec)
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeRecord unmarshals one raw record into the typed document for the
// given schema kind.
func DecodeRecord(kind schema.Kind, data []byte) (schema.Record, error) {
	var rec schema.Record
	switch kind {
	case schema.KB:
		rec = &schema.Document{}
	case schema.QA:
		rec = &schema.QADocument{}
	case schema.Pairs:
		rec = &schema.PairsDocument{}
	case schema.TextToText:
		rec = &schema.TextToTextDocument{}
	case schema.Entailment:
		rec = &schema.EntailmentDocument{}
	case schema.Text:
		rec = &schema.TextDocument{}
	default:
		return nil, fmt.Errorf("unsupported schema kind %v", kind)
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func NewJSONLinesReader(kind schema.Kind) Reader {
	return jsonLinesReader{kind: kind}
}

type jsonLinesReader struct {
	kind schema.Kind
}

func (r jsonLinesReader) Read(file *os.File) (chan schema.Record, chan error) {
	recordChan := make(chan schema.Record)
	errChan := make(chan error)
	go r.read(file, recordChan, errChan)
	return recordChan, errChan
}

func (r jsonLinesReader) read(file *os.File, recordChan chan schema.Record, errChan chan error) {
	scn := bufio.NewScanner(file)
	// Abstracts routinely exceed the default scanner buffer.
	scn.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	row := 0
	for scn.Scan() {
		row++
		line := scn.Bytes()
		if len(line) == 0 {
			continue
		}
		rec, err := DecodeRecord(r.kind, line)
		if err != nil {
			log.Warn().Int("row", row).Err(err).Msg("invalid record in split file")
			continue
		}
		recordChan <- rec
	}

	errChan <- scn.Err()
}

func NewJSONReader(kind schema.Kind) Reader {
	return jsonReader{kind: kind}
}

type jsonReader struct {
	kind schema.Kind
}

func (r jsonReader) Read(file *os.File) (chan schema.Record, chan error) {
	recordChan := make(chan schema.Record)
	errChan := make(chan error)
	go r.read(file, recordChan, errChan)
	return recordChan, errChan
}

func (r jsonReader) read(file *os.File, recordChan chan schema.Record, errChan chan error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		errChan <- err
		return
	}

	for i, data := range raw {
		rec, err := DecodeRecord(r.kind, data)
		if err != nil {
			log.Warn().Int("index", i).Err(err).Msg("invalid record in split file")
			continue
		}
		recordChan <- rec
	}

	errChan <- nil
}
