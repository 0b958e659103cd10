package summarize

// Kind identifies which of the two generation calls a prompt (or a
// failure) belongs to.
type Kind string

const (
	KindSummary Kind = "summary"
	KindTasks   Kind = "tasks"
)

const summaryPromptEN = `You are a meeting assistant. Write a concise narrative summary of the meeting transcript provided by the user. Cover the main discussion points, decisions made, and overall outcome. Write in plain prose, no headings, no bullet lists.`

const tasksPromptEN = `You are a meeting assistant. Extract the action items from the meeting transcript provided by the user. Output one action item per line, each line starting with "- ". When the transcript names a responsible person, append "(@name)" to the line. When a deadline is mentioned, append "[deadline]" with the stated date or timeframe. Output only the list, nothing else. If there are no action items, output "- none".`

const summaryPromptAR = `أنت مساعد اجتماعات. اكتب ملخصاً سردياً موجزاً لمحضر الاجتماع الذي يقدمه المستخدم. غطِّ نقاط النقاش الرئيسية والقرارات المتخذة والنتيجة العامة. اكتب نثراً واضحاً دون عناوين أو قوائم نقطية.`

const tasksPromptAR = `أنت مساعد اجتماعات. استخرج بنود العمل من محضر الاجتماع الذي يقدمه المستخدم. اكتب كل بند في سطر مستقل يبدأ بـ "- ". إذا ذُكر شخص مسؤول أضف "(@الاسم)" إلى السطر، وإذا ذُكر موعد نهائي أضفه بين قوسين مربعين "[الموعد]". اكتب القائمة فقط دون أي شيء آخر. إذا لم توجد بنود عمل اكتب "- لا يوجد".`

// promptFor selects the system prompt by generation kind and transcript
// language. Selection is driven entirely by the Arabic-script check.
func promptFor(kind Kind, arabic bool) string {
	if arabic {
		if kind == KindTasks {
			return tasksPromptAR
		}
		return summaryPromptAR
	}
	if kind == KindTasks {
		return tasksPromptEN
	}
	return summaryPromptEN
}
