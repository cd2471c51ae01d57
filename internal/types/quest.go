package types

// QuestType tags the progress rule applied to a quest on each message.
type QuestType string

const (
	QuestMessages         QuestType = "messages"
	QuestLongQuestion     QuestType = "long-question"
	QuestFocusMaintenance QuestType = "focus-maintenance"
	QuestHighXPMessage    QuestType = "high-xp-message"
	QuestVolume           QuestType = "volume"
	QuestPhilosophical    QuestType = "philosophical"
	QuestStreak           QuestType = "streak"
	QuestLongMessage      QuestType = "long-message"
	QuestQuestions        QuestType = "questions"
	QuestXPGain           QuestType = "xp-gain"
	QuestShortMessage     QuestType = "short-message"
	QuestFocusWeek        QuestType = "focus-week"
	QuestDailyQuestsWeek  QuestType = "daily-quests-week"
)

// Quest is one daily or weekly objective. Progress only moves forward within
// the quest's period and Completed flips true exactly once.
type Quest struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Type      QuestType `json:"type"`
	Target    int       `json:"target"`
	Progress  int       `json:"progress"`
	Completed bool      `json:"completed"`
	XP        int       `json:"xp"`
}
