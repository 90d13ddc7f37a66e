package report

// Schema is the JSON Schema (Draft 2020-12) for the single-file JSON
// export. It documents the structure written by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/codecheck/report.schema.json",
  "title": "codecheck File Report",
  "description": "Output schema for codecheck <file> --json",
  "type": "object",
  "required": ["file", "timestamp", "stats", "issues", "score", "grade"],
  "properties": {
    "file": {
      "type": "string",
      "description": "Path of the analyzed file"
    },
    "timestamp": {
      "type": "string",
      "format": "date-time",
      "description": "When the analysis ran (RFC 3339)"
    },
    "stats": { "$ref": "#/$defs/Stats" },
    "issues": {
      "type": "array",
      "description": "Issues ordered by source line",
      "items": { "$ref": "#/$defs/Issue" }
    },
    "score": {
      "type": "integer",
      "minimum": 0,
      "maximum": 100
    },
    "grade": { "$ref": "#/$defs/Grade" }
  },
  "$defs": {
    "Stats": {
      "type": "object",
      "required": [
        "lines", "blank_lines", "comment_lines",
        "functions", "classes", "complexity", "average_complexity"
      ],
      "properties": {
        "lines": { "type": "integer", "minimum": 0 },
        "blank_lines": { "type": "integer", "minimum": 0 },
        "comment_lines": { "type": "integer", "minimum": 0 },
        "functions": { "type": "integer", "minimum": 0 },
        "classes": { "type": "integer", "minimum": 0 },
        "complexity": {
          "type": "integer",
          "minimum": 0,
          "description": "Sum of every function's cyclomatic complexity"
        },
        "average_complexity": {
          "type": ["number", "null"],
          "description": "complexity / functions; null when there are no functions"
        }
      }
    },
    "Issue": {
      "type": "object",
      "required": ["id", "type", "line", "msg", "rule"],
      "properties": {
        "id": {
          "type": "string",
          "pattern": "^cq-[0-9a-f]{8}$",
          "description": "Stable identifier (cq-XXXXXXXX)"
        },
        "type": {
          "type": "string",
          "enum": ["error", "warning", "info"]
        },
        "line": { "type": "integer", "minimum": 1 },
        "msg": { "type": "string" },
        "rule": {
          "type": "string",
          "enum": [
            "function-length", "function-complexity",
            "function-docstring", "function-parameters",
            "class-docstring", "class-empty",
            "line-length", "dangerous-call"
          ]
        },
        "target": {
          "type": "string",
          "description": "Function, class or called name the issue refers to"
        }
      }
    },
    "Grade": {
      "type": "string",
      "enum": ["excellent", "good", "acceptable", "needs improvement"]
    }
  }
}`

// SummarySchema is the JSON Schema (Draft 2020-12) for the directory
// JSON export written by WriteSummaryJSON.
const SummarySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/codecheck/summary.schema.json",
  "title": "codecheck Directory Summary",
  "description": "Output schema for codecheck <directory> --json",
  "type": "object",
  "required": ["root", "files", "analyzed", "total_issues", "counts", "results", "failures"],
  "properties": {
    "root": { "type": "string" },
    "files": {
      "type": "integer",
      "minimum": 0,
      "description": "Number of files discovered"
    },
    "analyzed": {
      "type": "integer",
      "minimum": 0,
      "description": "Number of files that produced a report"
    },
    "total_issues": { "type": "integer", "minimum": 0 },
    "counts": { "$ref": "#/$defs/Counts" },
    "results": {
      "type": "array",
      "description": "Files ranked by issue count, most first",
      "items": { "$ref": "#/$defs/FileResult" }
    },
    "failures": {
      "type": "array",
      "items": { "$ref": "#/$defs/Failure" }
    }
  },
  "$defs": {
    "Counts": {
      "type": "object",
      "required": ["errors", "warnings", "infos"],
      "properties": {
        "errors": { "type": "integer", "minimum": 0 },
        "warnings": { "type": "integer", "minimum": 0 },
        "infos": { "type": "integer", "minimum": 0 }
      }
    },
    "FileResult": {
      "type": "object",
      "required": ["path", "issues", "counts", "score", "grade"],
      "properties": {
        "path": { "type": "string" },
        "issues": { "type": "integer", "minimum": 0 },
        "counts": { "$ref": "#/$defs/Counts" },
        "score": { "type": "integer", "minimum": 0, "maximum": 100 },
        "grade": {
          "type": "string",
          "enum": ["excellent", "good", "acceptable", "needs improvement"]
        }
      }
    },
    "Failure": {
      "type": "object",
      "required": ["path", "error"],
      "properties": {
        "path": { "type": "string" },
        "error": { "type": "string" }
      }
    }
  }
}`
