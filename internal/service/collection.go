package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/filter"
	"storefront/internal/model"
	"storefront/internal/storefront"
)

// ErrCollectionNotFound is returned when the storefront has no such collection
var ErrCollectionNotFound = errors.New("collection not found")

// CollectionQuerier is the part of the storefront client the service needs
type CollectionQuerier interface {
	CollectionDetails(ctx context.Context, q storefront.CollectionQuery, hdr storefront.RequestHeaders) (*storefront.CollectionResult, error)
	ResolveMetaobjectCollection(ctx context.Context, objType, handle, field string, hdr storefront.RequestHeaders) (string, error)
}

// PageViewRecorder stores page views; implemented by the postgres repository
type PageViewRecorder interface {
	RecordPageView(ctx context.Context, view *model.PageView) error
}

// Settings holds the listing defaults of the service
type Settings struct {
	PageSize         int
	CollectionsFirst int
	MetaobjectField  string
	RecordTimeout    time.Duration
}

// LoadRequest describes one collection page request
type LoadRequest struct {
	Ref      model.CollectionRef
	Path     string
	RawQuery string
	Headers  storefront.RequestHeaders
}

// CollectionService loads collection pages
type CollectionService struct {
	storefront CollectionQuerier
	recorder   PageViewRecorder
	translator *filter.Translator
	settings   Settings
	log        zerolog.Logger
}

// NewCollectionService creates a new collection service. recorder may be nil.
func NewCollectionService(
	sf CollectionQuerier,
	recorder PageViewRecorder,
	translator *filter.Translator,
	settings Settings,
	log zerolog.Logger,
) *CollectionService {
	if settings.RecordTimeout <= 0 {
		settings.RecordTimeout = 5 * time.Second
	}
	return &CollectionService{
		storefront: sf,
		recorder:   recorder,
		translator: translator,
		settings:   settings,
		log:        log,
	}
}

// Load translates the request query into storefront filters, fetches the
// collection and assembles the page payload.
func (s *CollectionService) Load(ctx context.Context, req LoadRequest) (*model.CollectionPage, error) {
	startTime := time.Now()

	params := filter.ParseQuery(req.RawQuery)
	translated := s.translator.Translate(params)
	sort := filter.TranslateSort(params)

	ref, err := s.resolve(ctx, req.Ref, req.Headers)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("handle", ref.Handle).
		Str("id", ref.ID).
		Interface("filters", translated.Filters).
		Str("sort_key", sort.SortKey).
		Msg("loading collection")

	result, err := s.storefront.CollectionDetails(ctx, storefront.CollectionQuery{
		Handle:           ref.Handle,
		ID:               ref.ID,
		Cursor:           filter.Get(params, filter.KeyCursor),
		Filters:          translated.Filters,
		Sort:             sort,
		PageBy:           s.settings.PageSize,
		CollectionsFirst: s.settings.CollectionsFirst,
	}, req.Headers)
	if err != nil {
		return nil, err
	}
	if result.Collection == nil {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, describe(req.Ref))
	}

	collection := result.Collection
	collections := result.Collections
	if collections == nil {
		collections = []model.CollectionSummary{}
	}

	page := &model.CollectionPage{
		Collection:     collection,
		AppliedFilters: filter.WithRemovalLinks(req.Path, params, translated.AppliedFilters),
		Collections:    collections,
		Sort:           sort,
		Analytics: model.Analytics{
			PageType:   model.PageTypeCollection,
			Handle:     collection.Handle,
			ResourceID: collection.ID,
		},
	}

	took := time.Since(startTime).Milliseconds()
	s.recordPageView(&model.PageView{
		Handle:         collection.Handle,
		ResourceID:     collection.ID,
		Filters:        model.NewFilterInputList(translated.Filters),
		AppliedCount:   len(translated.AppliedFilters),
		ProductCount:   len(collection.Products.Nodes),
		ResponseTimeMs: took,
	})

	return page, nil
}

// resolve turns a metaobject ref into a collection id ref
func (s *CollectionService) resolve(ctx context.Context, ref model.CollectionRef, hdr storefront.RequestHeaders) (model.CollectionRef, error) {
	if !ref.IsMetaobject() {
		if ref.Handle == "" && ref.ID == "" {
			return ref, fmt.Errorf("%w: empty collection reference", ErrCollectionNotFound)
		}
		return ref, nil
	}

	id, err := s.storefront.ResolveMetaobjectCollection(ctx, ref.MetaobjectType, ref.MetaobjectHandle, s.settings.MetaobjectField, hdr)
	if err != nil {
		return ref, err
	}
	if id == "" {
		return ref, fmt.Errorf("%w: %s", ErrCollectionNotFound, describe(ref))
	}
	return model.CollectionRef{ID: id}, nil
}

// recordPageView logs the view without blocking the response
func (s *CollectionService) recordPageView(view *model.PageView) {
	if s.recorder == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.settings.RecordTimeout)
		defer cancel()
		if err := s.recorder.RecordPageView(ctx, view); err != nil {
			s.log.Warn().Err(err).Str("handle", view.Handle).Msg("failed to record page view")
		}
	}()
}

func describe(ref model.CollectionRef) string {
	switch {
	case ref.Handle != "":
		return "handle " + ref.Handle
	case ref.ID != "":
		return "id " + ref.ID
	case ref.MetaobjectType != "":
		return fmt.Sprintf("metaobject %s/%s", ref.MetaobjectType, ref.MetaobjectHandle)
	default:
		return "empty reference"
	}
}
