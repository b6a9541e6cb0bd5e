package config

// defaultsJSON holds the built-in settings defaults.
const defaultsJSON = `{
  "startup_mode": "library",
  "statusbar": {
    "show_mode": true,
    "message_timeout_ms": 5000
  },
  "history": {
    "max_items": 100
  },
  "theme": {
    "foreground": "#d8dee9",
    "background": "#2e3440",
    "error": "#bf616a",
    "warning": "#ebcb8b"
  },
  "plugins": {
    "enabled": true
  }
}`
