package suggest

import (
	"context"
	"time"
)

// Canned advice per category. Kept deliberately static so the local
// strategy works offline and in tests.
var localAdvice = map[Category]string{
	CategoryInterview: `AI 建议：
1. 提前准备好简历、作品集等材料，多带几份纸质版。
2. 梳理岗位要求，准备自我介绍和常见问题的回答提纲。
3. 着装得体，提前规划路线，预留至少 30 分钟缓冲时间。
4. 面试结束后礼貌致谢，记录要点便于复盘。`,
	CategoryMeeting: `AI 建议：
1. 明确这次见面的目标，列出要沟通的要点。
2. 准备好相关资料或名片，确认时间地点无误。
3. 提前到场，注意仪表和沟通礼仪。
4. 结束后及时整理结论并跟进待办事项。`,
	CategoryTrip: `AI 建议：
1. 检查证件（身份证、驾驶证）和预订信息是否齐全。
2. 根据天气准备衣物、药品和充电设备。
3. 自驾出行请提前检查轮胎、油量、灯光和保险。
4. 规划好路线和休息点，保持通讯畅通。`,
	CategoryConference: `AI 建议：
1. 提前阅读会议议程和相关材料，准备发言要点。
2. 确认会议时间、地点或线上链接，测试设备。
3. 准备好笔记工具，记录结论和分工。
4. 会后整理纪要并同步给相关人员。`,
	CategoryGeneric: `AI 建议：
1. 明确这个日程的目标和所需材料。
2. 提前安排好时间，预留缓冲。
3. 列出注意事项清单，逐项确认。
4. 结束后做简单复盘。`,
}

// LocalProvider serves a fixed advice table with a small artificial delay
// so callers see the same asynchronous shape as the remote strategy.
type LocalProvider struct {
	delay time.Duration
}

func NewLocalProvider(delay time.Duration) *LocalProvider {
	if delay < 0 {
		delay = 0
	}
	return &LocalProvider{delay: delay}
}

func (p *LocalProvider) Name() string { return "local" }

func (p *LocalProvider) Suggest(ctx context.Context, title, description string) (Suggestion, error) {
	category := Classify(title, description)
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Suggestion{}, ctx.Err()
		}
	}
	return Suggestion{Category: category, Advice: localAdvice[category]}, nil
}
