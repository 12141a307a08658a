package service

import (
	"sort"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/repository"
	"github.com/Baaaki/screenshelf/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TopLimit caps the per-type rankings.
const TopLimit = 10

// RankedMedia is a media item with the mean of its users' personal ratings.
type RankedMedia struct {
	Media         models.Media
	AverageRating float64
	RatingsCount  int64
}

type RankingService struct {
	mediaRepo *repository.MediaRepository
}

func NewRankingService(mediaRepo *repository.MediaRepository) *RankingService {
	return &RankingService{mediaRepo: mediaRepo}
}

func (s *RankingService) TopMovies() ([]RankedMedia, error) {
	return s.rank(models.MediaTypeMovie, TopLimit)
}

func (s *RankingService) TopSeries() ([]RankedMedia, error) {
	return s.rank(models.MediaTypeSeries, TopLimit)
}

// GlobalRanking ranks every rated media item of any type.
func (s *RankingService) GlobalRanking() ([]RankedMedia, error) {
	return s.rank("", 0)
}

// rank orders rated media by mean personal rating, descending. An empty
// mediaType means any type; limit <= 0 means no truncation.
func (s *RankingService) rank(mediaType models.MediaType, limit int) ([]RankedMedia, error) {
	averages, err := s.mediaRepo.RatingAverages()
	if err != nil {
		logger.Log.Error("Failed to aggregate ratings",
			zap.Error(err),
		)
		return nil, err
	}

	ids := make([]uuid.UUID, len(averages))
	position := make(map[uuid.UUID]int, len(averages))
	for i, a := range averages {
		ids[i] = a.MediaID
		position[a.MediaID] = i
	}

	media, err := s.mediaRepo.ListMediaByIDs(ids, mediaType)
	if err != nil {
		logger.Log.Error("Failed to resolve ranked media",
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return nil, err
	}

	// The IN query loses the aggregate order
	sort.SliceStable(media, func(i, j int) bool {
		return position[media[i].ID] < position[media[j].ID]
	})

	if limit > 0 && len(media) > limit {
		media = media[:limit]
	}

	ranked := make([]RankedMedia, len(media))
	for i, m := range media {
		a := averages[position[m.ID]]
		ranked[i] = RankedMedia{
			Media:         m,
			AverageRating: round1(a.AverageRating),
			RatingsCount:  a.RatingsCount,
		}
	}

	logger.Log.Debug("Computed media ranking",
		zap.String("type", string(mediaType)),
		zap.Int("rated", len(averages)),
		zap.Int("returned", len(ranked)),
	)
	return ranked, nil
}
