package service

import (
	"Scribe/config"
	"Scribe/dao"
	"Scribe/models"
	"Scribe/pkg/snowflake"
	"Scribe/types"
	"context"
	"math/rand/v2"
	"time"
	_ "time/tzdata"

	"gorm.io/datatypes"
)

const (
	FortuneGreatLuck    = "great_luck"
	FortuneGoodLuck     = "good_luck"
	FortuneMildLuck     = "mild_luck"
	FortuneBadLuck      = "bad_luck"
	FortuneGreatBadLuck = "great_bad_luck"
)

const (
	fortuneDayLayout    = "2006-01-02"
	fortuneHistoryLimit = 30
	fortuneHistoryMax   = 100
)

type fortuneOutcome struct {
	Fortune string
	Label   string
	Advice  models.FortuneAdvice
}

// 签文顺序即随机下标
var fortuneOutcomes = []fortuneOutcome{
	{FortuneGreatLuck, "大吉", models.FortuneAdvice{
		Good: []string{"宜出行", "宜交友", "宜投资", "宜表白"},
		Bad:  []string{"忌争吵", "忌熬夜"},
	}},
	{FortuneGoodLuck, "中吉", models.FortuneAdvice{
		Good: []string{"宜学习", "宜运动", "宜购物"},
		Bad:  []string{"忌冲动", "忌贪心"},
	}},
	{FortuneMildLuck, "小吉", models.FortuneAdvice{
		Good: []string{"宜休息", "宜读书"},
		Bad:  []string{"忌冒险", "忌急躁"},
	}},
	{FortuneBadLuck, "凶", models.FortuneAdvice{
		Good: []string{"宜静养", "宜反思"},
		Bad:  []string{"忌出行", "忌投资", "忌争吵"},
	}},
	{FortuneGreatBadLuck, "大凶", models.FortuneAdvice{
		Good: []string{"宜祈福", "宜行善"},
		Bad:  []string{"忌外出", "忌决策", "忌冲突"},
	}},
}

var _ IFortuneService = (*FortuneService)(nil)

type IFortuneService interface {
	Status(ctx context.Context, uid int64) (*types.FortuneStatus, error)
	Draw(ctx context.Context, uid int64) (*types.FortuneItem, error)
	History(ctx context.Context, uid int64, limit int) ([]*types.FortuneItem, error)
}

// FortuneService 每日运势，每天 cutoff_hour 点刷新
type FortuneService struct {
	Config     *config.Fortune
	FortuneDAO *dao.FortuneDAO
	// Now 与 Intn 可替换，便于测试
	Now  func() time.Time
	Intn func(n int) int
}

// Status 今天是否已抽签以及下一次可抽签的时间
func (s *FortuneService) Status(ctx context.Context, uid int64) (*types.FortuneStatus, error) {
	day, next := s.window(s.now())
	record, err := s.FortuneDAO.FindByDay(ctx, uid, day)
	if err != nil {
		return nil, err
	}

	status := &types.FortuneStatus{NextDrawAt: next}
	if record != nil {
		status.Drawn = true
		status.Today = toFortuneItem(record)
	}
	return status, nil
}

// Draw 抽签，同一滚动日内只能抽一次
func (s *FortuneService) Draw(ctx context.Context, uid int64) (*types.FortuneItem, error) {
	now := s.now()
	day, _ := s.window(now)

	exist, err := s.FortuneDAO.FindByDay(ctx, uid, day)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrAlreadyDrawn
	}

	outcome := fortuneOutcomes[s.intn(len(fortuneOutcomes))]
	record := &models.FortuneRecord{
		ID:        snowflake.GenID(),
		UserID:    uid,
		DrawDay:   day,
		Fortune:   outcome.Fortune,
		Advice:    datatypes.NewJSONType(outcome.Advice),
		CreatedAt: now,
	}
	if err := s.FortuneDAO.Create(ctx, record); err != nil {
		// 并发抽签由唯一索引兜底
		if dao.IsDuplicate(err) {
			return nil, ErrAlreadyDrawn
		}
		return nil, err
	}
	return toFortuneItem(record), nil
}

func (s *FortuneService) History(ctx context.Context, uid int64, limit int) ([]*types.FortuneItem, error) {
	if limit <= 0 {
		limit = fortuneHistoryLimit
	}
	if limit > fortuneHistoryMax {
		limit = fortuneHistoryMax
	}
	records, err := s.FortuneDAO.History(ctx, uid, limit)
	if err != nil {
		return nil, err
	}
	items := make([]*types.FortuneItem, 0, len(records))
	for _, r := range records {
		items = append(items, toFortuneItem(r))
	}
	return items, nil
}

// window 返回 t 所在的滚动日以及下一个刷新时刻
// 刷新时刻之前仍算前一天
func (s *FortuneService) window(t time.Time) (string, time.Time) {
	loc := s.location()
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), s.Config.CutoffHour, 0, 0, 0, loc)
	if local.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	return start.Format(fortuneDayLayout), start.AddDate(0, 0, 1)
}

func (s *FortuneService) location() *time.Location {
	loc, err := time.LoadLocation(s.Config.Timezone)
	if err != nil {
		return time.FixedZone("CST", 8*3600)
	}
	return loc
}

func (s *FortuneService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *FortuneService) intn(n int) int {
	if s.Intn != nil {
		return s.Intn(n)
	}
	return rand.IntN(n)
}

func toFortuneItem(r *models.FortuneRecord) *types.FortuneItem {
	item := &types.FortuneItem{
		ID:        r.ID,
		Fortune:   r.Fortune,
		DrawDay:   r.DrawDay,
		CreatedAt: r.CreatedAt,
	}
	for _, o := range fortuneOutcomes {
		if o.Fortune == r.Fortune {
			item.Label = o.Label
			break
		}
	}
	advice := r.Advice.Data()
	item.Good = advice.Good
	item.Bad = advice.Bad
	return item
}
