package mcpserver

// BookmarksFormat describes the YAML content file that seeds the board.
const BookmarksFormat = `# Navboard Bookmarks Format

The board is loaded from a single YAML file. Edits made through the API or
tools live in memory; edit the file to make them permanent. The file is
reloaded automatically when it changes on disk.

## Structure

` + "```" + `yaml
categories:
  - id: dev                      # OPTIONAL – derived from title when absent
    title: Dev Tools             # REQUIRED – section heading and sidebar label
    subcategories: [git, ci]     # OPTIONAL – tab order; card tags are appended
    cards:
      - name: GitHub             # REQUIRED – display name, first letter is the fallback icon
        url: https://github.com  # REQUIRED for clickable cards
        description: Code hosting
        subcategory: git         # OPTIONAL – must match a tab to be filtered
` + "```" + `

## Rules

1. **Category ids are unique.** Explicit duplicates fail the load.
2. **` + "`" + `all` + "`" + ` is reserved** for the "every category" view and cannot be used as an id.
3. **Derived ids** are the lower-cased letters and digits of the title joined by
   dashes; collisions get a ` + "`" + `-2` + "`" + `, ` + "`" + `-3` + "`" + ` suffix.
4. **Icons** are resolved from the card URL's origin; only http and https URLs qualify.
5. **Encoding** is UTF-8. Titles and names may use any language.
`
