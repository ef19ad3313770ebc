package assessment

// bank cuestionario fijo de la evaluación de habilidades.
var bank = []Question{
	{ID: "q01", Topic: "git", Prompt: "¿Qué comando crea una rama nueva y cambia a ella?",
		Options: []string{"git branch -d", "git checkout -b", "git merge", "git stash"}, CorrectIndex: 1},
	{ID: "q02", Topic: "http", Prompt: "¿Qué código HTTP indica que un recurso fue creado?",
		Options: []string{"200", "201", "204", "302"}, CorrectIndex: 1},
	{ID: "q03", Topic: "sql", Prompt: "¿Qué cláusula filtra grupos después de un GROUP BY?",
		Options: []string{"WHERE", "ORDER BY", "HAVING", "LIMIT"}, CorrectIndex: 2},
	{ID: "q04", Topic: "agile", Prompt: "En Scrum, ¿quién prioriza el backlog del producto?",
		Options: []string{"El Scrum Master", "El equipo de desarrollo", "El Product Owner", "El cliente final"}, CorrectIndex: 2},
	{ID: "q05", Topic: "testing", Prompt: "¿Qué tipo de prueba verifica una unidad aislada de código?",
		Options: []string{"Prueba unitaria", "Prueba de carga", "Prueba end-to-end", "Prueba de aceptación"}, CorrectIndex: 0},
	{ID: "q06", Topic: "arquitectura", Prompt: "¿Qué principio indica depender de abstracciones y no de implementaciones?",
		Options: []string{"Responsabilidad única", "Abierto/cerrado", "Sustitución de Liskov", "Inversión de dependencias"}, CorrectIndex: 3},
	{ID: "q07", Topic: "seguridad", Prompt: "¿Cuál es la forma correcta de guardar contraseñas?",
		Options: []string{"Texto plano", "Base64", "Hash con sal (bcrypt)", "Cifrado reversible con clave fija"}, CorrectIndex: 2},
	{ID: "q08", Topic: "frontend", Prompt: "¿Qué propiedad CSS organiza elementos en una grilla bidimensional?",
		Options: []string{"display: flex", "display: grid", "position: absolute", "float: left"}, CorrectIndex: 1},
	{ID: "q09", Topic: "datos", Prompt: "¿Qué estructura ofrece búsqueda promedio O(1) por clave?",
		Options: []string{"Lista enlazada", "Árbol binario", "Tabla hash", "Pila"}, CorrectIndex: 2},
	{ID: "q10", Topic: "devops", Prompt: "¿Qué práctica integra y prueba cambios de forma automática en cada commit?",
		Options: []string{"Integración continua", "Code freeze", "Pair programming", "Hotfix"}, CorrectIndex: 0},
}

// Questions devuelve una copia del cuestionario fijo.
func Questions() []Question {
	out := make([]Question, len(bank))
	for i, q := range bank {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
