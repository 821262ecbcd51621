package availability

// ReadCache es el cache de lectura de un solo slot: guarda, para el último
// usuario consultado, el conjunto completo de cursos donde tiene skipauth=1.
// Vive dentro de un Exceptions (scope de request/operación), nunca como estado
// compartido entre requests.
type ReadCache struct {
	userID  int64
	loaded  bool
	courses map[int64]struct{}
}

// Holds indica si el slot está cargado para este usuario.
func (c *ReadCache) Holds(userID int64) bool {
	return c.loaded && c.userID == userID
}

// Lookup responde desde el cache. El segundo retorno indica si el slot aplica;
// si es false el caller debe ir al store.
func (c *ReadCache) Lookup(courseID, userID int64) (skip, ok bool) {
	if !c.Holds(userID) {
		return false, false
	}
	_, skip = c.courses[courseID]
	return skip, true
}

// Replace reemplaza el slot completo para el usuario dado.
func (c *ReadCache) Replace(userID int64, courseIDs []int64) {
	set := make(map[int64]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		set[id] = struct{}{}
	}
	c.userID = userID
	c.courses = set
	c.loaded = true
}

// Contains indica si el slot cargado incluye el curso.
func (c *ReadCache) Contains(courseID int64) bool {
	if !c.loaded {
		return false
	}
	_, ok := c.courses[courseID]
	return ok
}

// Invalidate limpia el slot entero; el próximo Get vuelve al store.
func (c *ReadCache) Invalidate() {
	c.userID = 0
	c.loaded = false
	c.courses = nil
}
