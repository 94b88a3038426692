package ideas

import (
	"database/sql"

	"github.com/google/uuid"
)

// ideaTagColumns is the shared projection for every query that left-joins
// ideas to their tags. The two trailing columns come from the tags side of
// the join and are NULL for ideas without tags.
const ideaTagColumns = `
	i.id, i.title, i.description, i.link, i.content, i.image, i.folder_id, i.created_at, i.updated_at,
	t.id, t.name`

// collectIdeas collapses the idea/tag left join into one Idea per idea id.
// The join yields one row per (idea, tag) pair, or a single row with NULL tag
// columns for an idea without tags. The first occurrence of an idea id seeds
// the accumulator, preserving row order; every row with a non-null tag id
// appends that tag to the idea's list. The idea_tags primary key guarantees
// the join never repeats a (idea, tag) pair, so no dedup is needed here.
func collectIdeas(rows *sql.Rows) ([]Idea, error) {
	ideas := []Idea{}
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			idea                              Idea
			description, link, content, image sql.NullString
			tagID                             uuid.NullUUID
			tagName                           sql.NullString
		)

		err := rows.Scan(
			&idea.ID,
			&idea.Title,
			&description,
			&link,
			&content,
			&image,
			&idea.FolderID,
			&idea.CreatedAt,
			&idea.UpdatedAt,
			&tagID,
			&tagName,
		)
		if err != nil {
			return nil, err
		}

		pos, seen := index[idea.ID]
		if !seen {
			idea.Description = description.String
			idea.Link = link.String
			idea.Content = content.String
			idea.Image = image.String
			idea.Tags = []TagSummary{}
			pos = len(ideas)
			index[idea.ID] = pos
			ideas = append(ideas, idea)
		}

		if tagID.Valid {
			ideas[pos].Tags = append(ideas[pos].Tags, TagSummary{ID: tagID.UUID, Name: tagName.String})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ideas, nil
}
