package chat

// DefaultSystemInstruction is the schema-aware instruction used when the
// caller does not supply a system turn of its own.
func DefaultSystemInstruction() string {
	return `You are a helpful AI assistant for a hospital supply-chain ERP system.
You have knowledge of the database schema and can execute SQL queries to retrieve real-time data.

Database Schema (PostgreSQL):
` + schemaDescriptor + `

IMPORTANT INSTRUCTIONS:
1. If the user asks for data from the database, YOU MUST generate a SQL query.
2. To execute a SQL query, your response must be a JSON object in this EXACT format:
   {"sql": "SELECT * FROM \"Product\" LIMIT 5"}
3. ONLY use SELECT statements. Do not use INSERT, UPDATE, DELETE, DROP, etc.
4. Always use double quotes for table and column names (e.g., "Product", "productName") because identifiers are case-sensitive.
5. If no database query is needed, just answer normally as plain text.
`
}

// BuildConversation folds prior history and the current message into the turn
// sequence for the first model call. A system turn in the history overrides
// the working instruction instead of joining the sequence; the last one wins.
func BuildConversation(message string, history []Turn) ([]Turn, string) {
	instruction := DefaultSystemInstruction()
	turns := make([]Turn, 0, len(history)+1)
	for _, turn := range history {
		switch turn.Role {
		case RoleSystem:
			instruction = turn.Content
		case RoleUser, RoleAssistant:
			turns = append(turns, turn)
		}
	}
	return append(turns, Turn{Role: RoleUser, Content: message}), instruction
}
