// internal/knowledge/search.go
package knowledge

import (
	"context"
	"errors"
	"strings"

	commonerrors "mafatih/internal/common/errors"
	"mafatih/internal/common/logger"
	"mafatih/internal/models"
)

const DefaultSearchLimit = 5

var (
	ErrSearchFailed     = errors.New("SEARCH_QUERY_FAILED")
	ErrBackendMisconfig = errors.New("SEARCH_BACKEND_NOT_CONFIGURED")
)

// Searcher looks up fatwas matching a free-text query. An empty result
// with a nil error means "no match".
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string) ([]models.Fatwa, error)
}

// MemorySearcher filters the curated in-process fatwas.
type MemorySearcher struct {
	fatwas []models.Fatwa
}

func NewMemorySearcher() *MemorySearcher {
	return &MemorySearcher{fatwas: curatedFatwas()}
}

func NewMemorySearcherWith(fatwas []models.Fatwa) *MemorySearcher {
	return &MemorySearcher{fatwas: fatwas}
}

func (s *MemorySearcher) Name() string { return "memory" }

// Search keeps a fatwa when its question or answer contains the query, or
// the query contains one of its tags.
func (s *MemorySearcher) Search(_ context.Context, query string) ([]models.Fatwa, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var hits []models.Fatwa
	for _, fatwa := range s.fatwas {
		if matchesFatwa(fatwa, q) {
			hits = append(hits, fatwa)
		}
	}
	return hits, nil
}

func matchesFatwa(fatwa models.Fatwa, q string) bool {
	if strings.Contains(strings.ToLower(fatwa.Question), q) || strings.Contains(strings.ToLower(fatwa.Answer), q) {
		return true
	}
	for _, tag := range fatwa.Tags {
		if tag != "" && strings.Contains(q, strings.ToLower(tag)) {
			return true
		}
	}
	return false
}

// Chain queries its searchers in order and returns the first non-empty
// result. Failing searchers are logged and skipped.
type Chain struct {
	searchers []Searcher
	logger    logger.Logger
}

func NewChain(log logger.Logger, searchers ...Searcher) *Chain {
	return &Chain{
		searchers: searchers,
		logger:    log.With(map[string]interface{}{"component": "knowledge-chain"}),
	}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Search(ctx context.Context, query string) ([]models.Fatwa, error) {
	hits, _ := c.SearchWithSource(ctx, query)
	return hits, nil
}

// SearchWithSource is Search plus the name of the searcher that answered.
func (c *Chain) SearchWithSource(ctx context.Context, query string) ([]models.Fatwa, string) {
	for _, searcher := range c.searchers {
		if ctx.Err() != nil {
			return nil, ""
		}

		hits, err := searcher.Search(ctx, query)
		if err != nil {
			stdErr := commonerrors.NewSearchQueryFailedError(searcher.Name(), err)
			c.logger.Warn("Fatwa searcher failed, trying next", map[string]interface{}{
				"searcher":  searcher.Name(),
				"errorCode": string(stdErr.Code),
				"error":     err.Error(),
			})
			continue
		}
		if len(hits) > 0 {
			c.logger.Debug("Fatwa search hit", map[string]interface{}{
				"searcher": searcher.Name(),
				"hits":     len(hits),
			})
			return hits, searcher.Name()
		}
	}
	return nil, ""
}

func (c *Chain) Len() int {
	return len(c.searchers)
}

func curatedFatwas() []models.Fatwa {
	return []models.Fatwa{
		{
			ID:       "1",
			Question: "ما هي أركان الإسلام؟",
			Answer:   "أركان الإسلام خمسة: شهادة أن لا إله إلا الله وأن محمداً رسول الله، وإقام الصلاة، وإيتاء الزكاة، وصوم رمضان، وحج البيت لمن استطاع إليه سبيلاً. هذه الأركان هي الأساس الذي يقوم عليه دين الإسلام، وهي واجبة على كل مسلم بالغ عاقل.",
			Source:   "الإسلام سؤال وجواب",
			Category: "العقيدة",
			Tags:     []string{"أركان", "إسلام", "أساسيات"},
		},
		{
			ID:       "2",
			Question: "كيف أتوضأ الوضوء الصحيح؟",
			Answer:   "الوضوء يكون بالنية أولاً، ثم التسمية، ثم غسل الكفين ثلاثاً، ثم المضمضة والاستنشاق ثلاثاً، ثم غسل الوجه ثلاثاً، ثم غسل اليدين إلى المرفقين ثلاثاً بدءاً باليمين، ثم مسح الرأس مرة واحدة، ثم غسل الرجلين إلى الكعبين ثلاثاً بدءاً باليمين.",
			Source:   "الدرر السنية",
			Category: "الطهارة",
			Tags:     []string{"وضوء", "طهارة", "صلاة"},
		},
		{
			ID:       "3",
			Question: "ما هي أوقات الصلوات الخمس؟",
			Answer:   "أوقات الصلوات الخمس هي: الفجر من طلوع الفجر الصادق إلى طلوع الشمس، والظهر من زوال الشمس إلى أن يصير ظل كل شيء مثله، والعصر من انتهاء وقت الظهر إلى غروب الشمس، والمغرب من غروب الشمس إلى غياب الشفق الأحمر، والعشاء من غياب الشفق الأحمر إلى منتصف الليل.",
			Source:   "الإسلام سؤال وجواب",
			Category: "الصلاة",
			Tags:     []string{"صلاة", "أوقات", "مواقيت"},
		},
		{
			ID:       "4",
			Question: "ما حكم صلاة الجماعة؟",
			Answer:   "صلاة الجماعة واجبة على الرجال القادرين في المسجد، وهي من أعظم شعائر الإسلام. قال النبي صلى الله عليه وسلم: 'صلاة الجماعة تفضل صلاة الفذ بسبع وعشرين درجة'. ويُعذر من تركها لعذر شرعي كالمرض أو الخوف أو السفر.",
			Source:   "الدرر السنية",
			Category: "الصلاة",
			Tags:     []string{"جماعة", "صلاة", "واجب"},
		},
		{
			ID:       "5",
			Question: "كيف أحسب زكاة المال؟",
			Answer:   "زكاة المال تجب في النقود والذهب والفضة إذا بلغت النصاب وحال عليها الحول. النصاب هو ما يعادل 85 جراماً من الذهب الخالص أو 595 جراماً من الفضة. والمقدار الواجب هو ربع العشر أي 2.5% من المال. مثال: إذا كان لديك 100,000 ريال وحال عليها الحول، فالزكاة = 100,000 × 2.5% = 2,500 ريال.",
			Source:   "الإسلام سؤال وجواب",
			Category: "الزكاة",
			Tags:     []string{"زكاة", "مال", "حساب"},
		},
	}
}
