package constant

const (
	ChatMessageRoleHuman  = "human"
	ChatMessageRoleAI     = "ai"
	ChatMessageRoleSystem = "system"
	ChatMessageRoleTool   = "tool"
)

// Workspace statuses and priorities. These are the only values the tool layer
// accepts; anything else is rejected before it reaches the database.
const (
	StatusPlanned      = "planned"
	StatusReadyToStart = "ready-to-start"
	StatusInProgress   = "in-progress"
	StatusCompleted    = "completed"
	StatusClosed       = "closed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Human reference prefixes. References render as prefix-number, e.g. I-123.
const (
	RefPrefixInitiative = "I"
	RefPrefixMilestone  = "M"
	RefPrefixObjective  = "O"
	RefPrefixKeyResult  = "K"
	RefPrefixSprint     = "S"
	RefPrefixWorkItem   = "W"
)

// Document types used in retrieval metadata.
const (
	DocumentTypeInitiative = "initiative"
	DocumentTypeMilestone  = "milestone"
	DocumentTypeObjective  = "objective"
	DocumentTypeWorkItem   = "work_item"
)

// Fixed tool responses for lookups that come back empty. The model relays
// these verbatim instead of inventing an answer.
const (
	InitiativeNotFoundMessage = "Failed to find the initiative"
	MilestoneNotFoundMessage  = "Failed to find the milestone"
	ObjectiveNotFoundMessage  = "Failed to find the objective"
	KeyResultNotFoundMessage  = "Failed to find the key result"
	SprintNotFoundMessage     = "Failed to find the sprint"
	WorkItemNotFoundMessage   = "Failed to find the work item"
)

const (
	AssistantSystemPromptV1 = `You are the workspace assistant for a project management tool. You help members plan and track delivery work.

WORKSPACE FACTS:
- Work is organized as objectives (OKRs) with key results, initiatives that deliver them, milestones with due dates, sprints, and work items.
- Every item has a human reference like I-123 (initiative), M-4 (milestone), O-2 (objective), K-3 (key result), S-7 (sprint), W-45 (work item).
- Statuses are: planned, ready-to-start, in-progress, completed, closed. Priorities are: low, medium, high.
- Dates are always YYYY-MM-DD.

RULES:
1. Use the available tools to read workspace data. Never invent items, references, or numbers.
2. When a lookup tool reports it failed to find something, relay that result to the user plainly. Do not guess.
3. Before creating or changing anything, describe exactly what you intend to do and ask the user to confirm. Only call a confirm-* tool after the user has agreed in this conversation.
4. Refer to items by their reference and title, e.g. "I-42 Checkout revamp".
5. Keep answers short and concrete. Use lists for multiple items.`

	// DecideUseRetrievalPromptV1 asks the classifier model whether the user
	// message needs workspace document retrieval. The caller substitutes the
	// message for %s and checks the reply for "true".
	DecideUseRetrievalPromptV1 = `Decide whether answering the user's message requires searching the workspace's project documents (initiative descriptions, milestone notes, objective write-ups).

Messages that need retrieval: questions about past decisions, plans, content of specific items, "what did we say about X".
Messages that do not: greetings, small talk, pure status/date/number queries answerable by structured lookups, requests to create or change items.

User message: %s

Respond with exactly one word: "true" or "false".`

	// RetrievalContextPromptV1 wraps retrieved snippets before the user
	// message. The assistant must treat them as background, never cite them
	// as if the user supplied them.
	RetrievalContextPromptV1 = `Background from the workspace's documents (retrieved automatically, the user has not seen this):

%s

Use this background only when relevant. Never tell the user you were given context or cite snippet numbers.`
)
