package scene

import "strings"

// parseEntities splits a BSP entity lump into one key/value map per entity.
func parseEntities(str string) []map[string]string {
	blocks := strings.Split(str, "}")
	entities := make([]map[string]string, 0, len(blocks))

	for _, block := range blocks {
		block = strings.TrimPrefix(strings.TrimSpace(block), "{")
		if strings.TrimSpace(block) == "" {
			continue
		}

		data := make(map[string]string)

		for _, entry := range strings.Split(block, "\n") {
			kv := strings.Split(entry, "\"")
			if len(kv) != 5 {
				continue
			}

			data[kv[1]] = kv[3]
		}

		entities = append(entities, data)
	}

	return entities
}
