package layout

import (
	"strconv"
	"strings"

	"toolbar-cli/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IDFunc mints node ids for synthesized groups and items.
type IDFunc func() string

type Option func(*options)

type options struct {
	logger        *zap.Logger
	newID         IDFunc
	onUnknownTool func(toolID string)
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithIDs(f IDFunc) Option {
	return func(o *options) {
		if f != nil {
			o.newID = f
		}
	}
}

// WithUnknownToolHandler is called for every tool id the registry does not
// know about. The tool is still dropped from the flat list.
func WithUnknownToolHandler(f func(toolID string)) Option {
	return func(o *options) { o.onUnknownTool = f }
}

func buildOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

const sequentialPrefix = "n"

// SequentialIDs returns n<start+1>, n<start+2>, ... Flattening the same
// nested definition with SequentialIDs(0) always yields the same ids, which
// keeps CLI references stable between invocations.
func SequentialIDs(start int) IDFunc {
	n := start
	return func() string {
		n++
		return sequentialPrefix + strconv.Itoa(n)
	}
}

// NextSequentialIDs continues the sequence after the highest n<k> id in list.
func NextSequentialIDs(list []model.Node) IDFunc {
	max := 0
	for _, n := range list {
		if !strings.HasPrefix(n.ID, sequentialPrefix) {
			continue
		}
		k, err := strconv.Atoi(strings.TrimPrefix(n.ID, sequentialPrefix))
		if err != nil {
			continue
		}
		if k > max {
			max = k
		}
	}
	return SequentialIDs(max)
}
